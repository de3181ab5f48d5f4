// Package nbe implements normalization by evaluation for Pie: the semantic
// domain, typing contexts and the conversion between Core and values in
// both directions.
package nbe

import (
	"sync"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/src"
)

// Value is the result of evaluating a Core term. Eliminations that cannot
// proceed because their target is unknown are represented as Neu.
type Value interface {
	value()
}

type (
	Universe struct{}

	Nat  struct{}
	Zero struct{}
	Add1 struct{ N Value }

	Atom  struct{}
	Quote struct{ Symbol string }

	Pi struct {
		Name   string
		Arg    Value
		Result Closure
	}
	Lam struct {
		Name string
		Body Closure
	}

	Sigma struct {
		Name string
		Car  Value
		Cdr  Closure
	}
	Cons struct {
		Car, Cdr Value
	}

	Trivial struct{}
	Sole    struct{}

	List     struct{ Elem Value }
	ListCons struct {
		Head, Tail Value
	}
	Nil struct{}

	Absurd struct{}

	Equal struct {
		Type, From, To Value
	}
	Same struct{ Value Value }

	Vec struct {
		Elem, Len Value
	}
	VecCons struct {
		Head, Tail Value
	}
	VecNil struct{}

	Either struct {
		Left, Right Value
	}
	Left  struct{ Value Value }
	Right struct{ Value Value }

	// Neu is a neutral term together with its type.
	Neu struct {
		Type    Value
		Neutral Neutral
	}
)

func (*Universe) value() {}
func (*Nat) value()      {}
func (*Zero) value()     {}
func (*Add1) value()     {}
func (*Atom) value()     {}
func (*Quote) value()    {}
func (*Pi) value()       {}
func (*Lam) value()      {}
func (*Sigma) value()    {}
func (*Cons) value()     {}
func (*Trivial) value()  {}
func (*Sole) value()     {}
func (*List) value()     {}
func (*ListCons) value() {}
func (*Nil) value()      {}
func (*Absurd) value()   {}
func (*Equal) value()    {}
func (*Same) value()     {}
func (*Vec) value()      {}
func (*VecCons) value()  {}
func (*VecNil) value()   {}
func (*Either) value()   {}
func (*Left) value()     {}
func (*Right) value()    {}
func (*Neu) value()      {}
func (*Delay) value()    {}

// Norm is a value paired with its type, as read-back needs both.
type Norm struct {
	Type, Value Value
}

// Neutral is an elimination stuck on a variable, or on another Neutral.
type Neutral interface {
	neutral()
}

type (
	NVar struct{ Name string }
	NTODO struct {
		Loc  src.Range
		Type Value
	}
	NAp struct {
		Rator Neutral
		Rand  Norm
	}

	NWhichNat struct {
		Target     Neutral
		Base, Step Norm
	}
	NIterNat struct {
		Target     Neutral
		Base, Step Norm
	}
	NRecNat struct {
		Target     Neutral
		Base, Step Norm
	}
	NIndNat struct {
		Target             Neutral
		Motive, Base, Step Norm
	}

	NCar struct{ Target Neutral }
	NCdr struct{ Target Neutral }

	NRecList struct {
		Target     Neutral
		Base, Step Norm
	}
	NIndList struct {
		Target             Neutral
		Motive, Base, Step Norm
	}

	NIndAbsurd struct {
		Target Neutral
		Motive Norm
	}

	NReplace struct {
		Target       Neutral
		Motive, Base Norm
	}
	NTrans1 struct {
		Left  Neutral
		Right Norm
	}
	NTrans2 struct {
		Left  Norm
		Right Neutral
	}
	NTrans12 struct {
		Left, Right Neutral
	}
	NCong struct {
		Target   Neutral
		Codomain Value
		Fun      Norm
	}
	NSymm     struct{ Target Neutral }
	NIndEqual struct {
		Target       Neutral
		Motive, Base Norm
	}

	NHead struct{ Target Neutral }
	NTail struct{ Target Neutral }
	// NIndVec2 is stuck on its vector only, NIndVec12 on both its length
	// and its vector.
	NIndVec2 struct {
		Len                Norm
		Target             Neutral
		Motive, Base, Step Norm
	}
	NIndVec12 struct {
		Len, Target        Neutral
		Motive, Base, Step Norm
	}

	NIndEither struct {
		Target              Neutral
		Motive, Left, Right Norm
	}
)

func (*NVar) neutral()       {}
func (*NTODO) neutral()      {}
func (*NAp) neutral()        {}
func (*NWhichNat) neutral()  {}
func (*NIterNat) neutral()   {}
func (*NRecNat) neutral()    {}
func (*NIndNat) neutral()    {}
func (*NCar) neutral()       {}
func (*NCdr) neutral()       {}
func (*NRecList) neutral()   {}
func (*NIndList) neutral()   {}
func (*NIndAbsurd) neutral() {}
func (*NReplace) neutral()   {}
func (*NTrans1) neutral()    {}
func (*NTrans2) neutral()    {}
func (*NTrans12) neutral()   {}
func (*NCong) neutral()      {}
func (*NSymm) neutral()      {}
func (*NIndEqual) neutral()  {}
func (*NHead) neutral()      {}
func (*NTail) neutral()      {}
func (*NIndVec2) neutral()   {}
func (*NIndVec12) neutral()  {}
func (*NIndEither) neutral() {}

// Closure is a function body awaiting its argument.
type Closure interface {
	Apply(arg Value) Value
}

// FOClosure is a Core body together with the environment it was built in.
type FOClosure struct {
	Env  Env
	Name string
	Body core.Core
}

func (c *FOClosure) Apply(arg Value) Value {
	return Eval(c.Env.Extend(c.Name, arg), c.Body)
}

// HOClosure is a closure implemented by a Go function, used to build the
// types of eliminator motives and steps.
type HOClosure struct {
	Name string
	Fun  func(Value) Value
}

func (c *HOClosure) Apply(arg Value) Value {
	return c.Fun(arg)
}

// Delay is a value that is only computed when first needed. The result is
// memoized: the thunk runs at most once, even under concurrent forcing.
type Delay struct {
	once  sync.Once
	thunk func() Value
	val   Value
}

// Later delays evaluating c in env.
func Later(env Env, c core.Core) Value {
	return Suspend(func() Value { return Eval(env, c) })
}

// Suspend delays calling thunk.
func Suspend(thunk func() Value) *Delay {
	return &Delay{thunk: thunk}
}

// Force returns the value of d, computing it on the first call only.
func (d *Delay) Force() Value {
	d.once.Do(func() {
		d.val = Now(d.thunk())
		d.thunk = nil
	})
	return d.val
}

// Now forces v if it is a Delay. Every consumer of a Value must look at
// Now(v) rather than v.
func Now(v Value) Value {
	if d, ok := v.(*Delay); ok {
		return d.Force()
	}
	return v
}

// PiType builds a Π type whose codomain is computed by a Go function.
func PiType(name string, arg Value, result func(Value) Value) *Pi {
	return &Pi{Name: name, Arg: arg, Result: &HOClosure{Name: name, Fun: result}}
}

// Arrow builds a non-dependent Π type.
func Arrow(name string, arg, result Value) *Pi {
	return PiType(name, arg, func(Value) Value { return result })
}
