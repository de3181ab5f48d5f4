package nbe

import (
	"encoding/json"

	"github.com/cottand/pie/frontend/core"
	"github.com/samber/lo"
)

type BinderKind string

const (
	KindFree  BinderKind = "free"
	KindDef   BinderKind = "def"
	KindClaim BinderKind = "claim"
)

// ExportedBinder is a context entry with its type and value read back to
// Core, so that it can be inspected or stored without the closures that
// values contain. Value is nil unless Kind is KindDef.
type ExportedBinder struct {
	Name  string
	Kind  BinderKind
	Type  core.Core
	Value core.Core
}

func (b ExportedBinder) MarshalJSON() ([]byte, error) {
	out := struct {
		Name  string     `json:"name"`
		Kind  BinderKind `json:"kind"`
		Type  string     `json:"type"`
		Value string     `json:"value,omitempty"`
	}{
		Name: b.Name,
		Kind: b.Kind,
		Type: core.String(b.Type),
	}
	if b.Value != nil {
		out.Value = core.String(b.Value)
	}
	return json.Marshal(out)
}

type indexedEntry struct {
	name   string
	binder Binder
}

// ExportCtx projects ctx, most recent binding first. Each entry is read
// back in the context it was bound in.
func ExportCtx(ctx Ctx) []ExportedBinder {
	entries := make([]indexedEntry, 0, ctx.Len())
	for name, b := range ctx.All() {
		entries = append(entries, indexedEntry{name: name, binder: b})
	}
	return lo.Map(entries, func(e indexedEntry, i int) ExportedBinder {
		scope := ctx.tail(i)
		exported := ExportedBinder{Name: e.name, Type: ReadBackType(scope, e.binder.BinderType())}
		switch b := e.binder.(type) {
		case *Free:
			exported.Kind = KindFree
		case *Claim:
			exported.Kind = KindClaim
		case *Def:
			exported.Kind = KindDef
			exported.Value = ReadBack(scope, b.Type, b.Value)
		}
		return exported
	})
}
