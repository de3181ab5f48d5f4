// Package core holds the elaborated, location-free terms of Pie.
//
// A Core term is what the checker hands back when elaboration succeeds.
// Binders are single-parameter and eliminators that cannot recover their
// result type from a motive carry it explicitly in a The node.
package core

import "github.com/cottand/pie/frontend/src"

// Core is the interface for all elaborated terms.
type Core interface {
	coreNode() // Marker method to distinguish core terms
}

type (
	The struct {
		Type, Expr Core
	}
	Var struct {
		Name string
	}
	// TODO is a hole of a known type. It keeps its source location,
	// which is what tells two holes apart.
	TODO struct {
		Loc  src.Range
		Type Core
	}
	App struct {
		Rator, Rand Core
	}

	U struct{}

	Nat    struct{}
	Zero   struct{}
	Add1   struct{ N Core }
	NatLit struct{ N uint64 }
	// WhichNat, IterNat and RecNat keep (the B base) so that the
	// result type is known when the target is neutral.
	WhichNat struct {
		Target Core
		Base   *The
		Step   Core
	}
	IterNat struct {
		Target Core
		Base   *The
		Step   Core
	}
	RecNat struct {
		Target Core
		Base   *The
		Step   Core
	}
	IndNat struct {
		Target, Motive, Base, Step Core
	}

	// Pi is (Π ((Name Arg)) Body).
	Pi struct {
		Name      string
		Arg, Body Core
	}
	Lambda struct {
		Name string
		Body Core
	}

	// Sigma is (Σ ((Name Car)) Cdr).
	Sigma struct {
		Name     string
		Car, Cdr Core
	}
	Cons struct {
		Car, Cdr Core
	}
	Car struct{ Pair Core }
	Cdr struct{ Pair Core }

	Atom  struct{}
	Quote struct{ Symbol string }

	Trivial struct{}
	Sole    struct{}

	List     struct{ Elem Core }
	Nil      struct{}
	ListCons struct {
		Head, Tail Core
	}
	RecList struct {
		Target Core
		Base   *The
		Step   Core
	}
	IndList struct {
		Target, Motive, Base, Step Core
	}

	Absurd    struct{}
	IndAbsurd struct {
		Target, Motive Core
	}

	Equal struct {
		Type, From, To Core
	}
	Same    struct{ Expr Core }
	Replace struct {
		Target, Motive, Base Core
	}
	Trans struct {
		Left, Right Core
	}
	// Cong is (cong Target Codomain Fun).
	Cong struct {
		Target, Codomain, Fun Core
	}
	Symm     struct{ Target Core }
	IndEqual struct {
		Target, Motive, Base Core
	}

	Vec struct {
		Elem, Len Core
	}
	VecNil  struct{}
	VecCons struct {
		Head, Tail Core
	}
	Head   struct{ Vec Core }
	Tail   struct{ Vec Core }
	IndVec struct {
		Len, Target, Motive, Base, Step Core
	}

	Either struct {
		Left, Right Core
	}
	Left      struct{ Expr Core }
	Right     struct{ Expr Core }
	IndEither struct {
		Target, Motive, Left, Right Core
	}
)

func (*The) coreNode()       {}
func (*Var) coreNode()       {}
func (*TODO) coreNode()      {}
func (*App) coreNode()       {}
func (*U) coreNode()         {}
func (*Nat) coreNode()       {}
func (*Zero) coreNode()      {}
func (*Add1) coreNode()      {}
func (*NatLit) coreNode()    {}
func (*WhichNat) coreNode()  {}
func (*IterNat) coreNode()   {}
func (*RecNat) coreNode()    {}
func (*IndNat) coreNode()    {}
func (*Pi) coreNode()        {}
func (*Lambda) coreNode()    {}
func (*Sigma) coreNode()     {}
func (*Cons) coreNode()      {}
func (*Car) coreNode()       {}
func (*Cdr) coreNode()       {}
func (*Atom) coreNode()      {}
func (*Quote) coreNode()     {}
func (*Trivial) coreNode()   {}
func (*Sole) coreNode()      {}
func (*List) coreNode()      {}
func (*Nil) coreNode()       {}
func (*ListCons) coreNode()  {}
func (*RecList) coreNode()   {}
func (*IndList) coreNode()   {}
func (*Absurd) coreNode()    {}
func (*IndAbsurd) coreNode() {}
func (*Equal) coreNode()     {}
func (*Same) coreNode()      {}
func (*Replace) coreNode()   {}
func (*Trans) coreNode()     {}
func (*Cong) coreNode()      {}
func (*Symm) coreNode()      {}
func (*IndEqual) coreNode()  {}
func (*Vec) coreNode()       {}
func (*VecNil) coreNode()    {}
func (*VecCons) coreNode()   {}
func (*Head) coreNode()      {}
func (*Tail) coreNode()      {}
func (*IndVec) coreNode()    {}
func (*Either) coreNode()    {}
func (*Left) coreNode()      {}
func (*Right) coreNode()     {}
func (*IndEither) coreNode() {}
