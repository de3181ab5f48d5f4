package nbe

import (
	"fmt"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/internal/log"
)

var nbeLogger = log.DefaultLogger.With("section", "nbe")

// stuck reports an elimination applied to a value of the wrong shape.
// Evaluation only runs on checked terms, so this is a bug in the checker.
func stuck(op string, v Value) Value {
	nbeLogger.Error("evaluation got stuck on a non-neutral value", "op", op, "value", fmt.Sprintf("%T", v))
	panic(fmt.Sprintf("%s: unexpected value %T", op, v))
}

// ValInCtx evaluates c in the environment of ctx.
func ValInCtx(ctx Ctx, c core.Core) Value {
	return Eval(CtxToEnv(ctx), c)
}

// Eval evaluates c in env. Sub-terms that are not immediately scrutinised
// are delayed.
func Eval(env Env, c core.Core) Value {
	later := func(c core.Core) Value { return Later(env, c) }

	switch c := c.(type) {
	case *core.The:
		return Eval(env, c.Expr)
	case *core.Var:
		v, ok := env.Lookup(c.Name)
		if !ok {
			panic(fmt.Sprintf("unbound variable %s during evaluation", c.Name))
		}
		return v
	case *core.TODO:
		typ := later(c.Type)
		return &Neu{Type: typ, Neutral: &NTODO{Loc: c.Loc, Type: typ}}
	case *core.App:
		return DoAp(Eval(env, c.Rator), later(c.Rand))

	case *core.U:
		return &Universe{}

	case *core.Nat:
		return &Nat{}
	case *core.Zero:
		return &Zero{}
	case *core.Add1:
		return &Add1{N: later(c.N)}
	case *core.NatLit:
		var n Value = &Zero{}
		for i := uint64(0); i < c.N; i++ {
			n = &Add1{N: n}
		}
		return n
	case *core.WhichNat:
		return DoWhichNat(Eval(env, c.Target), later(c.Base.Type), later(c.Base.Expr), later(c.Step))
	case *core.IterNat:
		return DoIterNat(Eval(env, c.Target), later(c.Base.Type), later(c.Base.Expr), later(c.Step))
	case *core.RecNat:
		return DoRecNat(Eval(env, c.Target), later(c.Base.Type), later(c.Base.Expr), later(c.Step))
	case *core.IndNat:
		return DoIndNat(Eval(env, c.Target), later(c.Motive), later(c.Base), later(c.Step))

	case *core.Pi:
		return &Pi{Name: c.Name, Arg: later(c.Arg), Result: &FOClosure{Env: env, Name: c.Name, Body: c.Body}}
	case *core.Lambda:
		return &Lam{Name: c.Name, Body: &FOClosure{Env: env, Name: c.Name, Body: c.Body}}

	case *core.Sigma:
		return &Sigma{Name: c.Name, Car: later(c.Car), Cdr: &FOClosure{Env: env, Name: c.Name, Body: c.Cdr}}
	case *core.Cons:
		return &Cons{Car: later(c.Car), Cdr: later(c.Cdr)}
	case *core.Car:
		return DoCar(Eval(env, c.Pair))
	case *core.Cdr:
		return DoCdr(Eval(env, c.Pair))

	case *core.Atom:
		return &Atom{}
	case *core.Quote:
		return &Quote{Symbol: c.Symbol}

	case *core.Trivial:
		return &Trivial{}
	case *core.Sole:
		return &Sole{}

	case *core.List:
		return &List{Elem: later(c.Elem)}
	case *core.Nil:
		return &Nil{}
	case *core.ListCons:
		return &ListCons{Head: later(c.Head), Tail: later(c.Tail)}
	case *core.RecList:
		return DoRecList(Eval(env, c.Target), later(c.Base.Type), later(c.Base.Expr), later(c.Step))
	case *core.IndList:
		return DoIndList(Eval(env, c.Target), later(c.Motive), later(c.Base), later(c.Step))

	case *core.Absurd:
		return &Absurd{}
	case *core.IndAbsurd:
		return DoIndAbsurd(Eval(env, c.Target), later(c.Motive))

	case *core.Equal:
		return &Equal{Type: later(c.Type), From: later(c.From), To: later(c.To)}
	case *core.Same:
		return &Same{Value: later(c.Expr)}
	case *core.Replace:
		return DoReplace(Eval(env, c.Target), later(c.Motive), later(c.Base))
	case *core.Trans:
		return DoTrans(Eval(env, c.Left), Eval(env, c.Right))
	case *core.Cong:
		return DoCong(Eval(env, c.Target), later(c.Codomain), later(c.Fun))
	case *core.Symm:
		return DoSymm(Eval(env, c.Target))
	case *core.IndEqual:
		return DoIndEqual(Eval(env, c.Target), later(c.Motive), later(c.Base))

	case *core.Vec:
		return &Vec{Elem: later(c.Elem), Len: later(c.Len)}
	case *core.VecNil:
		return &VecNil{}
	case *core.VecCons:
		return &VecCons{Head: later(c.Head), Tail: later(c.Tail)}
	case *core.Head:
		return DoHead(Eval(env, c.Vec))
	case *core.Tail:
		return DoTail(Eval(env, c.Vec))
	case *core.IndVec:
		return DoIndVec(Eval(env, c.Len), Eval(env, c.Target), later(c.Motive), later(c.Base), later(c.Step))

	case *core.Either:
		return &Either{Left: later(c.Left), Right: later(c.Right)}
	case *core.Left:
		return &Left{Value: later(c.Expr)}
	case *core.Right:
		return &Right{Value: later(c.Expr)}
	case *core.IndEither:
		return DoIndEither(Eval(env, c.Target), later(c.Motive), later(c.Left), later(c.Right))
	default:
		panic(fmt.Sprintf("cannot evaluate %T", c))
	}
}

// DoAp applies a function value to an argument.
func DoAp(f, arg Value) Value {
	switch f := Now(f).(type) {
	case *Lam:
		return f.Body.Apply(arg)
	case *Neu:
		if p, ok := Now(f.Type).(*Pi); ok {
			return &Neu{
				Type:    p.Result.Apply(arg),
				Neutral: &NAp{Rator: f.Neutral, Rand: Norm{Type: p.Arg, Value: arg}},
			}
		}
		return stuck("application", f.Type)
	default:
		return stuck("application", f)
	}
}

func DoWhichNat(target, baseType, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Zero:
		return Now(base)
	case *Add1:
		return DoAp(step, t.N)
	case *Neu:
		return &Neu{Type: baseType, Neutral: &NWhichNat{
			Target: t.Neutral,
			Base:   Norm{Type: baseType, Value: base},
			Step:   Norm{Type: Arrow("n-1", &Nat{}, baseType), Value: step},
		}}
	default:
		return stuck("which-Nat", t)
	}
}

func DoIterNat(target, baseType, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Zero:
		return Now(base)
	case *Add1:
		return DoAp(step, Suspend(func() Value { return DoIterNat(t.N, baseType, base, step) }))
	case *Neu:
		return &Neu{Type: baseType, Neutral: &NIterNat{
			Target: t.Neutral,
			Base:   Norm{Type: baseType, Value: base},
			Step:   Norm{Type: Arrow("ih", baseType, baseType), Value: step},
		}}
	default:
		return stuck("iter-Nat", t)
	}
}

func DoRecNat(target, baseType, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Zero:
		return Now(base)
	case *Add1:
		ih := Suspend(func() Value { return DoRecNat(t.N, baseType, base, step) })
		return DoAp(DoAp(step, t.N), ih)
	case *Neu:
		return &Neu{Type: baseType, Neutral: &NRecNat{
			Target: t.Neutral,
			Base:   Norm{Type: baseType, Value: base},
			Step:   Norm{Type: Arrow("n-1", &Nat{}, Arrow("ih", baseType, baseType)), Value: step},
		}}
	default:
		return stuck("rec-Nat", t)
	}
}

// IndNatStepType is (Π ((n-1 Nat)) (→ (mot n-1) (mot (add1 n-1)))).
func IndNatStepType(motive Value) Value {
	return PiType("n-1", &Nat{}, func(n1 Value) Value {
		return Arrow("ih", DoAp(motive, n1), DoAp(motive, &Add1{N: n1}))
	})
}

func DoIndNat(target, motive, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Zero:
		return Now(base)
	case *Add1:
		ih := Suspend(func() Value { return DoIndNat(t.N, motive, base, step) })
		return DoAp(DoAp(step, t.N), ih)
	case *Neu:
		return &Neu{Type: DoAp(motive, t), Neutral: &NIndNat{
			Target: t.Neutral,
			Motive: Norm{Type: Arrow("n", &Nat{}, &Universe{}), Value: motive},
			Base:   Norm{Type: DoAp(motive, &Zero{}), Value: base},
			Step:   Norm{Type: IndNatStepType(motive), Value: step},
		}}
	default:
		return stuck("ind-Nat", t)
	}
}

func DoCar(pair Value) Value {
	switch p := Now(pair).(type) {
	case *Cons:
		return Now(p.Car)
	case *Neu:
		if sigma, ok := Now(p.Type).(*Sigma); ok {
			return &Neu{Type: sigma.Car, Neutral: &NCar{Target: p.Neutral}}
		}
		return stuck("car", p.Type)
	default:
		return stuck("car", p)
	}
}

func DoCdr(pair Value) Value {
	switch p := Now(pair).(type) {
	case *Cons:
		return Now(p.Cdr)
	case *Neu:
		if sigma, ok := Now(p.Type).(*Sigma); ok {
			return &Neu{Type: sigma.Cdr.Apply(DoCar(p)), Neutral: &NCdr{Target: p.Neutral}}
		}
		return stuck("cdr", p.Type)
	default:
		return stuck("cdr", p)
	}
}

func listElem(t *Neu) Value {
	if l, ok := Now(t.Type).(*List); ok {
		return l.Elem
	}
	return stuck("list eliminator", t.Type)
}

func DoRecList(target, baseType, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Nil:
		return Now(base)
	case *ListCons:
		ih := Suspend(func() Value { return DoRecList(t.Tail, baseType, base, step) })
		return DoAp(DoAp(DoAp(step, t.Head), t.Tail), ih)
	case *Neu:
		elem := listElem(t)
		stepType := Arrow("e", elem, Arrow("es", &List{Elem: elem}, Arrow("ih", baseType, baseType)))
		return &Neu{Type: baseType, Neutral: &NRecList{
			Target: t.Neutral,
			Base:   Norm{Type: baseType, Value: base},
			Step:   Norm{Type: stepType, Value: step},
		}}
	default:
		return stuck("rec-List", t)
	}
}

// IndListStepType is
// (Π ((e E) (es (List E))) (→ (mot es) (mot (:: e es)))).
func IndListStepType(elem, motive Value) Value {
	return PiType("e", elem, func(e Value) Value {
		return PiType("es", &List{Elem: elem}, func(es Value) Value {
			return Arrow("ih", DoAp(motive, es), DoAp(motive, &ListCons{Head: e, Tail: es}))
		})
	})
}

func DoIndList(target, motive, base, step Value) Value {
	switch t := Now(target).(type) {
	case *Nil:
		return Now(base)
	case *ListCons:
		ih := Suspend(func() Value { return DoIndList(t.Tail, motive, base, step) })
		return DoAp(DoAp(DoAp(step, t.Head), t.Tail), ih)
	case *Neu:
		elem := listElem(t)
		return &Neu{Type: DoAp(motive, t), Neutral: &NIndList{
			Target: t.Neutral,
			Motive: Norm{Type: Arrow("xs", &List{Elem: elem}, &Universe{}), Value: motive},
			Base:   Norm{Type: DoAp(motive, &Nil{}), Value: base},
			Step:   Norm{Type: IndListStepType(elem, motive), Value: step},
		}}
	default:
		return stuck("ind-List", t)
	}
}

func DoIndAbsurd(target, motive Value) Value {
	if t, ok := Now(target).(*Neu); ok {
		return &Neu{Type: motive, Neutral: &NIndAbsurd{
			Target: t.Neutral,
			Motive: Norm{Type: &Universe{}, Value: motive},
		}}
	}
	return stuck("ind-Absurd", target)
}

func equalType(t *Neu) *Equal {
	if eq, ok := Now(t.Type).(*Equal); ok {
		return eq
	}
	stuck("equality eliminator", t.Type)
	return nil
}

func DoReplace(target, motive, base Value) Value {
	switch t := Now(target).(type) {
	case *Same:
		return Now(base)
	case *Neu:
		eq := equalType(t)
		return &Neu{Type: DoAp(motive, eq.To), Neutral: &NReplace{
			Target: t.Neutral,
			Motive: Norm{Type: Arrow("x", eq.Type, &Universe{}), Value: motive},
			Base:   Norm{Type: DoAp(motive, eq.From), Value: base},
		}}
	default:
		return stuck("replace", t)
	}
}

func DoTrans(left, right Value) Value {
	l, r := Now(left), Now(right)
	switch l := l.(type) {
	case *Same:
		switch r := r.(type) {
		case *Same:
			return &Same{Value: l.Value}
		case *Neu:
			eq := equalType(r)
			return &Neu{
				Type: &Equal{Type: eq.Type, From: l.Value, To: eq.To},
				Neutral: &NTrans2{
					Left:  Norm{Type: &Equal{Type: eq.Type, From: l.Value, To: l.Value}, Value: l},
					Right: r.Neutral,
				},
			}
		}
	case *Neu:
		eq := equalType(l)
		switch r := r.(type) {
		case *Same:
			return &Neu{
				Type: &Equal{Type: eq.Type, From: eq.From, To: r.Value},
				Neutral: &NTrans1{
					Left:  l.Neutral,
					Right: Norm{Type: &Equal{Type: eq.Type, From: r.Value, To: r.Value}, Value: r},
				},
			}
		case *Neu:
			return &Neu{
				Type:    &Equal{Type: eq.Type, From: eq.From, To: equalType(r).To},
				Neutral: &NTrans12{Left: l.Neutral, Right: r.Neutral},
			}
		}
	}
	return stuck("trans", l)
}

func DoCong(target, codomain, fun Value) Value {
	switch t := Now(target).(type) {
	case *Same:
		return &Same{Value: DoAp(fun, t.Value)}
	case *Neu:
		eq := equalType(t)
		return &Neu{
			Type: &Equal{Type: codomain, From: DoAp(fun, eq.From), To: DoAp(fun, eq.To)},
			Neutral: &NCong{
				Target:   t.Neutral,
				Codomain: codomain,
				Fun:      Norm{Type: Arrow("x", eq.Type, codomain), Value: fun},
			},
		}
	default:
		return stuck("cong", t)
	}
}

func DoSymm(target Value) Value {
	switch t := Now(target).(type) {
	case *Same:
		return t
	case *Neu:
		eq := equalType(t)
		return &Neu{Type: &Equal{Type: eq.Type, From: eq.To, To: eq.From}, Neutral: &NSymm{Target: t.Neutral}}
	default:
		return stuck("symm", t)
	}
}

// IndEqualMotiveType is (Π ((to A)) (→ (= A from to) U)).
func IndEqualMotiveType(typ, from Value) Value {
	return PiType("to", typ, func(to Value) Value {
		return Arrow("p", &Equal{Type: typ, From: from, To: to}, &Universe{})
	})
}

func DoIndEqual(target, motive, base Value) Value {
	switch t := Now(target).(type) {
	case *Same:
		return Now(base)
	case *Neu:
		eq := equalType(t)
		return &Neu{Type: DoAp(DoAp(motive, eq.To), t), Neutral: &NIndEqual{
			Target: t.Neutral,
			Motive: Norm{Type: IndEqualMotiveType(eq.Type, eq.From), Value: motive},
			Base:   Norm{Type: DoAp(DoAp(motive, eq.From), &Same{Value: eq.From}), Value: base},
		}}
	default:
		return stuck("ind-=", t)
	}
}

func vecType(t *Neu) *Vec {
	if v, ok := Now(t.Type).(*Vec); ok {
		return v
	}
	stuck("vector eliminator", t.Type)
	return nil
}

func DoHead(vec Value) Value {
	switch v := Now(vec).(type) {
	case *VecCons:
		return Now(v.Head)
	case *Neu:
		return &Neu{Type: vecType(v).Elem, Neutral: &NHead{Target: v.Neutral}}
	default:
		return stuck("head", v)
	}
}

func DoTail(vec Value) Value {
	switch v := Now(vec).(type) {
	case *VecCons:
		return Now(v.Tail)
	case *Neu:
		vt := vecType(v)
		if l, ok := Now(vt.Len).(*Add1); ok {
			return &Neu{Type: &Vec{Elem: vt.Elem, Len: l.N}, Neutral: &NTail{Target: v.Neutral}}
		}
		return stuck("tail", vt.Len)
	default:
		return stuck("tail", v)
	}
}

// IndVecMotiveType is (Π ((k Nat)) (→ (Vec E k) U)).
func IndVecMotiveType(elem Value) Value {
	return PiType("k", &Nat{}, func(k Value) Value {
		return Arrow("es", &Vec{Elem: elem, Len: k}, &Universe{})
	})
}

// IndVecStepType is
// (Π ((k Nat) (h E) (t (Vec E k))) (→ (mot k t) (mot (add1 k) (vec:: h t)))).
func IndVecStepType(elem, motive Value) Value {
	return PiType("k", &Nat{}, func(k Value) Value {
		return PiType("h", elem, func(h Value) Value {
			return PiType("t", &Vec{Elem: elem, Len: k}, func(t Value) Value {
				return Arrow("ih",
					DoAp(DoAp(motive, k), t),
					DoAp(DoAp(motive, &Add1{N: k}), &VecCons{Head: h, Tail: t}))
			})
		})
	})
}

func DoIndVec(length, target, motive, base, step Value) Value {
	l, t := Now(length), Now(target)
	switch t := t.(type) {
	case *VecNil:
		return Now(base)
	case *VecCons:
		n, ok := l.(*Add1)
		if !ok {
			return stuck("ind-Vec", l)
		}
		ih := Suspend(func() Value { return DoIndVec(n.N, t.Tail, motive, base, step) })
		return DoAp(DoAp(DoAp(DoAp(step, n.N), t.Head), t.Tail), ih)
	case *Neu:
		elem := vecType(t).Elem
		motiveNorm := Norm{Type: IndVecMotiveType(elem), Value: motive}
		baseNorm := Norm{Type: DoAp(DoAp(motive, &Zero{}), &VecNil{}), Value: base}
		stepNorm := Norm{Type: IndVecStepType(elem, motive), Value: step}
		resultType := DoAp(DoAp(motive, l), t)
		if ln, ok := l.(*Neu); ok {
			return &Neu{Type: resultType, Neutral: &NIndVec12{
				Len: ln.Neutral, Target: t.Neutral, Motive: motiveNorm, Base: baseNorm, Step: stepNorm,
			}}
		}
		return &Neu{Type: resultType, Neutral: &NIndVec2{
			Len: Norm{Type: &Nat{}, Value: l}, Target: t.Neutral, Motive: motiveNorm, Base: baseNorm, Step: stepNorm,
		}}
	default:
		return stuck("ind-Vec", t)
	}
}

func DoIndEither(target, motive, left, right Value) Value {
	switch t := Now(target).(type) {
	case *Left:
		return DoAp(left, t.Value)
	case *Right:
		return DoAp(right, t.Value)
	case *Neu:
		either, ok := Now(t.Type).(*Either)
		if !ok {
			return stuck("ind-Either", t.Type)
		}
		return &Neu{Type: DoAp(motive, t), Neutral: &NIndEither{
			Target: t.Neutral,
			Motive: Norm{Type: Arrow("x", either, &Universe{}), Value: motive},
			Left: Norm{Type: PiType("x", either.Left, func(x Value) Value {
				return DoAp(motive, &Left{Value: x})
			}), Value: left},
			Right: Norm{Type: PiType("x", either.Right, func(x Value) Value {
				return DoAp(motive, &Right{Value: x})
			}), Value: right},
		}}
	default:
		return stuck("ind-Either", t)
	}
}
