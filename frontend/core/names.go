package core

import "github.com/hashicorp/go-set/v3"

var keywords = set.From([]string{
	"U",
	"Nat", "zero", "add1", "which-Nat", "iter-Nat", "rec-Nat", "ind-Nat",
	"->", "→", "Π", "Pi", "∏", "λ", "lambda",
	"Σ", "Sigma", "Pair", "cons", "car", "cdr",
	"Atom", "quote",
	"Trivial", "sole",
	"List", "::", "nil", "rec-List", "ind-List",
	"Absurd", "ind-Absurd",
	"=", "same", "replace", "trans", "cong", "symm", "ind-=",
	"Vec", "vecnil", "vec::", "head", "tail", "ind-Vec",
	"Either", "left", "right", "ind-Either",
	"TODO", "the",
	"claim", "define", "check-same",
})

// IsVarName reports whether name may be bound by a program, which is any
// non-empty name that is not one of the language's keywords.
func IsVarName(name string) bool {
	return name != "" && !keywords.Contains(name)
}

// Names returns every variable name occurring in c, whether bound or free.
func Names(c Core) *set.Set[string] {
	names := set.New[string](8)
	collectNames(c, names)
	return names
}

func collectNames(c Core, into *set.Set[string]) {
	walk := func(cs ...Core) {
		for _, child := range cs {
			collectNames(child, into)
		}
	}
	switch c := c.(type) {
	case nil:
	case *Var:
		into.Insert(c.Name)
	case *Pi:
		into.Insert(c.Name)
		walk(c.Arg, c.Body)
	case *Lambda:
		into.Insert(c.Name)
		walk(c.Body)
	case *Sigma:
		into.Insert(c.Name)
		walk(c.Car, c.Cdr)
	default:
		walk(Children(c)...)
	}
}

// Children returns the immediate sub-terms of c in left-to-right order.
// Binder names are not sub-terms.
func Children(c Core) []Core {
	switch c := c.(type) {
	case *The:
		return []Core{c.Type, c.Expr}
	case *TODO:
		return []Core{c.Type}
	case *App:
		return []Core{c.Rator, c.Rand}
	case *Add1:
		return []Core{c.N}
	case *WhichNat:
		return []Core{c.Target, c.Base, c.Step}
	case *IterNat:
		return []Core{c.Target, c.Base, c.Step}
	case *RecNat:
		return []Core{c.Target, c.Base, c.Step}
	case *IndNat:
		return []Core{c.Target, c.Motive, c.Base, c.Step}
	case *Pi:
		return []Core{c.Arg, c.Body}
	case *Lambda:
		return []Core{c.Body}
	case *Sigma:
		return []Core{c.Car, c.Cdr}
	case *Cons:
		return []Core{c.Car, c.Cdr}
	case *Car:
		return []Core{c.Pair}
	case *Cdr:
		return []Core{c.Pair}
	case *List:
		return []Core{c.Elem}
	case *ListCons:
		return []Core{c.Head, c.Tail}
	case *RecList:
		return []Core{c.Target, c.Base, c.Step}
	case *IndList:
		return []Core{c.Target, c.Motive, c.Base, c.Step}
	case *IndAbsurd:
		return []Core{c.Target, c.Motive}
	case *Equal:
		return []Core{c.Type, c.From, c.To}
	case *Same:
		return []Core{c.Expr}
	case *Replace:
		return []Core{c.Target, c.Motive, c.Base}
	case *Trans:
		return []Core{c.Left, c.Right}
	case *Cong:
		return []Core{c.Target, c.Codomain, c.Fun}
	case *Symm:
		return []Core{c.Target}
	case *IndEqual:
		return []Core{c.Target, c.Motive, c.Base}
	case *Vec:
		return []Core{c.Elem, c.Len}
	case *VecCons:
		return []Core{c.Head, c.Tail}
	case *Head:
		return []Core{c.Vec}
	case *Tail:
		return []Core{c.Vec}
	case *IndVec:
		return []Core{c.Len, c.Target, c.Motive, c.Base, c.Step}
	case *Either:
		return []Core{c.Left, c.Right}
	case *Left:
		return []Core{c.Expr}
	case *Right:
		return []Core{c.Expr}
	case *IndEither:
		return []Core{c.Target, c.Motive, c.Left, c.Right}
	default:
		return nil
	}
}
