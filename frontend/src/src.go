// Package src holds the surface syntax of Pie as produced by a reader.
//
// Every node carries a Range so that the checker can report where a
// failure happened. The kernel never builds Src itself, it only consumes it.
package src

// Src is the interface for all surface nodes.
type Src interface {
	Positioner
	srcNode() // Marker method to distinguish surface nodes
}

// BindingSite is a binder occurrence: the name introduced and where.
type BindingSite struct {
	Range
	Name string
}

// TypedBinder is a (name type) pair as found in Π and Σ.
type TypedBinder struct {
	Site BindingSite
	Type Src
}

type (
	// The is a type annotation, (the Type Expr).
	The struct {
		Range
		Type, Expr Src
	}

	// Var is a reference to a bound name.
	Var struct {
		Range
		Name string
	}

	// Hole is the TODO marker standing for an unfinished expression.
	Hole struct {
		Range
	}

	// App applies Rator to one or more arguments.
	App struct {
		Range
		Rator Src
		Rands []Src
	}

	U struct{ Range }

	Nat     struct{ Range }
	Zero    struct{ Range }
	Add1    struct {
		Range
		N Src
	}
	// NatLit is a numeral such as 2.
	NatLit struct {
		Range
		N uint64
	}
	WhichNat struct {
		Range
		Target, Base, Step Src
	}
	IterNat struct {
		Range
		Target, Base, Step Src
	}
	RecNat struct {
		Range
		Target, Base, Step Src
	}
	IndNat struct {
		Range
		Target, Motive, Base, Step Src
	}

	// Arrow is (-> A B ... C). Args has at least two elements, the last one
	// being the result type.
	Arrow struct {
		Range
		Args []Src
	}
	Pi struct {
		Range
		Binders []TypedBinder
		Body    Src
	}
	Lambda struct {
		Range
		Params []BindingSite
		Body   Src
	}

	Sigma struct {
		Range
		Binders []TypedBinder
		Body    Src
	}
	Pair struct {
		Range
		Car, Cdr Src
	}
	Cons struct {
		Range
		Car, Cdr Src
	}
	Car struct {
		Range
		Pair Src
	}
	Cdr struct {
		Range
		Pair Src
	}

	Atom  struct{ Range }
	Quote struct {
		Range
		Symbol string
	}

	Trivial struct{ Range }
	Sole    struct{ Range }

	List struct {
		Range
		Elem Src
	}
	Nil      struct{ Range }
	ListCons struct {
		Range
		Head, Tail Src
	}
	RecList struct {
		Range
		Target, Base, Step Src
	}
	IndList struct {
		Range
		Target, Motive, Base, Step Src
	}

	Absurd    struct{ Range }
	IndAbsurd struct {
		Range
		Target, Motive Src
	}

	Equal struct {
		Range
		Type, From, To Src
	}
	Same struct {
		Range
		Expr Src
	}
	Replace struct {
		Range
		Target, Motive, Base Src
	}
	Trans struct {
		Range
		Left, Right Src
	}
	Cong struct {
		Range
		Target, Fun Src
	}
	Symm struct {
		Range
		Target Src
	}
	IndEqual struct {
		Range
		Target, Motive, Base Src
	}

	Vec struct {
		Range
		Elem, Len Src
	}
	VecNil  struct{ Range }
	VecCons struct {
		Range
		Head, Tail Src
	}
	Head struct {
		Range
		Vec Src
	}
	Tail struct {
		Range
		Vec Src
	}
	IndVec struct {
		Range
		Len, Target, Motive, Base, Step Src
	}

	Either struct {
		Range
		Left, Right Src
	}
	Left struct {
		Range
		Expr Src
	}
	Right struct {
		Range
		Expr Src
	}
	IndEither struct {
		Range
		Target, Motive, Left, Right Src
	}
)

func (*The) srcNode()       {}
func (*Var) srcNode()       {}
func (*Hole) srcNode()      {}
func (*App) srcNode()       {}
func (*U) srcNode()         {}
func (*Nat) srcNode()       {}
func (*Zero) srcNode()      {}
func (*Add1) srcNode()      {}
func (*NatLit) srcNode()    {}
func (*WhichNat) srcNode()  {}
func (*IterNat) srcNode()   {}
func (*RecNat) srcNode()    {}
func (*IndNat) srcNode()    {}
func (*Arrow) srcNode()     {}
func (*Pi) srcNode()        {}
func (*Lambda) srcNode()    {}
func (*Sigma) srcNode()     {}
func (*Pair) srcNode()      {}
func (*Cons) srcNode()      {}
func (*Car) srcNode()       {}
func (*Cdr) srcNode()       {}
func (*Atom) srcNode()      {}
func (*Quote) srcNode()     {}
func (*Trivial) srcNode()   {}
func (*Sole) srcNode()      {}
func (*List) srcNode()      {}
func (*Nil) srcNode()       {}
func (*ListCons) srcNode()  {}
func (*RecList) srcNode()   {}
func (*IndList) srcNode()   {}
func (*Absurd) srcNode()    {}
func (*IndAbsurd) srcNode() {}
func (*Equal) srcNode()     {}
func (*Same) srcNode()      {}
func (*Replace) srcNode()   {}
func (*Trans) srcNode()     {}
func (*Cong) srcNode()      {}
func (*Symm) srcNode()      {}
func (*IndEqual) srcNode()  {}
func (*Vec) srcNode()       {}
func (*VecNil) srcNode()    {}
func (*VecCons) srcNode()   {}
func (*Head) srcNode()      {}
func (*Tail) srcNode()      {}
func (*IndVec) srcNode()    {}
func (*Either) srcNode()    {}
func (*Left) srcNode()      {}
func (*Right) srcNode()     {}
func (*IndEither) srcNode() {}
