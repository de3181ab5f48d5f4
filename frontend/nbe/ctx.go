package nbe

import (
	"iter"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
	"github.com/cottand/pie/util"
	"github.com/hashicorp/go-set/v3"
)

// Binder is what a Ctx knows about a name.
type Binder interface {
	BinderType() Value
}

type (
	// Claim reserves a name with a type, before it is defined.
	Claim struct{ Type Value }
	// Def is a fully defined name.
	Def struct {
		Type, Value Value
	}
	// Free is bound by an enclosing λ, Π or Σ and has no value yet.
	Free struct{ Type Value }
)

func (b *Claim) BinderType() Value { return b.Type }
func (b *Def) BinderType() Value   { return b.Type }
func (b *Free) BinderType() Value  { return b.Type }

type ctxEntry struct {
	name   string
	binder Binder
}

// Ctx is the typing context, most recent binding first.
//
// A Ctx is never modified: every Bind function returns a new Ctx which
// shares its tail with the old one, so any Ctx may be kept and reused.
type Ctx struct {
	entries *immutable.List[ctxEntry]
}

// InitCtx returns the empty context.
func InitCtx() Ctx {
	return Ctx{entries: immutable.NewList[ctxEntry]()}
}

func (ctx Ctx) list() *immutable.List[ctxEntry] {
	if ctx.entries == nil {
		return immutable.NewList[ctxEntry]()
	}
	return ctx.entries
}

func (ctx Ctx) extend(name string, b Binder) Ctx {
	return Ctx{entries: ctx.list().Prepend(ctxEntry{name: name, binder: b})}
}

// All yields the entries of ctx front to back.
func (ctx Ctx) All() iter.Seq2[string, Binder] {
	return func(yield func(string, Binder) bool) {
		itr := ctx.list().Iterator()
		for !itr.Done() {
			_, entry := itr.Next()
			if !yield(entry.name, entry.binder) {
				return
			}
		}
	}
}

func (ctx Ctx) Len() int {
	return ctx.list().Len()
}

// tail returns the context in which the i-th entry was added.
func (ctx Ctx) tail(i int) Ctx {
	l := ctx.list()
	return Ctx{entries: l.Slice(i+1, l.Len())}
}

// Lookup returns the first binder of name, whatever its kind.
func (ctx Ctx) Lookup(name string) (Binder, bool) {
	for n, b := range ctx.All() {
		if n == name {
			return b, true
		}
	}
	return nil, false
}

// IsBound reports whether any binder of ctx uses name.
func (ctx Ctx) IsBound(name string) bool {
	_, ok := ctx.Lookup(name)
	return ok
}

// Names returns every name bound in ctx.
func (ctx Ctx) Names() *set.Set[string] {
	return util.SetFromSeq(util.Keys(ctx.All()), ctx.Len())
}

// BindFree adds a Free binder for name.
//
// Binding a name twice is a bug in the caller, which should have picked a
// fresh name, so it panics with a perr.DuplicateBinding.
func BindFree(ctx Ctx, name string, typ Value) Ctx {
	if ctx.IsBound(name) {
		panic(perr.DuplicateBinding{Name: name})
	}
	return ctx.extend(name, &Free{Type: typ})
}

// BindVal adds a Def binder for name.
func BindVal(ctx Ctx, name string, typ, value Value) Ctx {
	return ctx.extend(name, &Def{Type: typ, Value: value})
}

// BindClaim adds a Claim binder for name.
func BindClaim(ctx Ctx, name string, typ Value) Ctx {
	return ctx.extend(name, &Claim{Type: typ})
}

// VarType finds the type of name, ignoring names that are only claimed.
func VarType(ctx Ctx, loc src.Positioner, name string) (Value, error) {
	for n, b := range ctx.All() {
		if _, isClaim := b.(*Claim); isClaim {
			continue
		}
		if n == name {
			return b.BinderType(), nil
		}
	}
	return nil, perr.New(perr.ScopeError, loc, "Unknown variable", name)
}

// CtxToEnv projects ctx to the environment used for evaluation: Def
// contributes its value, Free a neutral variable and Claim nothing.
func CtxToEnv(ctx Ctx) Env {
	builder := immutable.NewListBuilder[envEntry]()
	for n, b := range ctx.All() {
		switch b := b.(type) {
		case *Def:
			builder.Append(envEntry{name: n, value: b.Value})
		case *Free:
			builder.Append(envEntry{name: n, value: &Neu{Type: b.Type, Neutral: &NVar{Name: n}}})
		case *Claim:
		}
	}
	return Env{entries: builder.List()}
}
