package check

import (
	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
)

// Synth elaborates e and works out its type. The result is always a
// (the T e) whose T is a normal type.
func Synth(ctx nbe.Ctx, r Renaming, e src.Src) (*core.The, error) {
	val := func(c core.Core) nbe.Value { return nbe.ValInCtx(ctx, c) }
	the := func(tv nbe.Value, c core.Core) *core.The {
		return &core.The{Type: nbe.ReadBackType(ctx, tv), Expr: c}
	}

	switch e := e.(type) {
	case *src.The:
		t, err := IsType(ctx, r, e.Type)
		if err != nil {
			return nil, err
		}
		c, err := Check(ctx, r, e.Expr, val(t))
		if err != nil {
			return nil, err
		}
		return the(val(t), c), nil

	case *src.Var:
		if r.Captures(e.Name) {
			return nil, stop(perr.ScopeError, e, "Unknown variable", e.Name)
		}
		x := r.Rename(e.Name)
		tv, err := nbe.VarType(ctx, e, x)
		if err != nil {
			checkLogger.Debug("checking stopped", "at", e.Range.String(), "error", err)
			return nil, err
		}
		return the(tv, &core.Var{Name: x}), nil

	case *src.Zero:
		return &core.The{Type: &core.Nat{}, Expr: &core.Zero{}}, nil
	case *src.NatLit:
		return &core.The{Type: &core.Nat{}, Expr: &core.NatLit{N: e.N}}, nil
	case *src.Add1:
		n, err := Check(ctx, r, e.N, &nbe.Nat{})
		if err != nil {
			return nil, err
		}
		return &core.The{Type: &core.Nat{}, Expr: &core.Add1{N: n}}, nil

	case *src.WhichNat:
		return synthNatElim(ctx, r, e.Target, e.Base, e.Step, func(b nbe.Value) nbe.Value {
			return nbe.Arrow("n-1", &nbe.Nat{}, b)
		}, func(t core.Core, base *core.The, s core.Core) core.Core {
			return &core.WhichNat{Target: t, Base: base, Step: s}
		})
	case *src.IterNat:
		return synthNatElim(ctx, r, e.Target, e.Base, e.Step, func(b nbe.Value) nbe.Value {
			return nbe.Arrow("ih", b, b)
		}, func(t core.Core, base *core.The, s core.Core) core.Core {
			return &core.IterNat{Target: t, Base: base, Step: s}
		})
	case *src.RecNat:
		return synthNatElim(ctx, r, e.Target, e.Base, e.Step, func(b nbe.Value) nbe.Value {
			return nbe.Arrow("n-1", &nbe.Nat{}, nbe.Arrow("ih", b, b))
		}, func(t core.Core, base *core.The, s core.Core) core.Core {
			return &core.RecNat{Target: t, Base: base, Step: s}
		})

	case *src.IndNat:
		target, err := Check(ctx, r, e.Target, &nbe.Nat{})
		if err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.Arrow("n", &nbe.Nat{}, &nbe.Universe{}))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		base, err := Check(ctx, r, e.Base, nbe.DoAp(mv, &nbe.Zero{}))
		if err != nil {
			return nil, err
		}
		step, err := Check(ctx, r, e.Step, nbe.IndNatStepType(mv))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(mv, val(target)), &core.IndNat{Target: target, Motive: motive, Base: base, Step: step}), nil

	case *src.Car:
		p, err := Synth(ctx, r, e.Pair)
		if err != nil {
			return nil, err
		}
		sigma, err := expectShape[*nbe.Sigma](ctx, e, val(p.Type), "a Σ type")
		if err != nil {
			return nil, err
		}
		return the(sigma.Car, &core.Car{Pair: p.Expr}), nil
	case *src.Cdr:
		p, err := Synth(ctx, r, e.Pair)
		if err != nil {
			return nil, err
		}
		sigma, err := expectShape[*nbe.Sigma](ctx, e, val(p.Type), "a Σ type")
		if err != nil {
			return nil, err
		}
		return the(sigma.Cdr.Apply(nbe.DoCar(val(p.Expr))), &core.Cdr{Pair: p.Expr}), nil

	case *src.Quote:
		if !core.IsAtomSymbol(e.Symbol) {
			return nil, stop(perr.BadName, e, "Atoms may contain only letters and hyphens, but found", e.Symbol)
		}
		return &core.The{Type: &core.Atom{}, Expr: &core.Quote{Symbol: e.Symbol}}, nil

	case *src.Sole:
		return &core.The{Type: &core.Trivial{}, Expr: &core.Sole{}}, nil

	case *src.ListCons:
		head, err := Synth(ctx, r, e.Head)
		if err != nil {
			return nil, err
		}
		lt := &nbe.List{Elem: val(head.Type)}
		tail, err := Check(ctx, r, e.Tail, lt)
		if err != nil {
			return nil, err
		}
		return the(lt, &core.ListCons{Head: head.Expr, Tail: tail}), nil

	case *src.RecList:
		target, err := Synth(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		lt, err := expectShape[*nbe.List](ctx, e.Target, val(target.Type), "a List type")
		if err != nil {
			return nil, err
		}
		base, err := Synth(ctx, r, e.Base)
		if err != nil {
			return nil, err
		}
		bt := val(base.Type)
		stepType := nbe.Arrow("e", lt.Elem, nbe.Arrow("es", lt, nbe.Arrow("ih", bt, bt)))
		step, err := Check(ctx, r, e.Step, stepType)
		if err != nil {
			return nil, err
		}
		return &core.The{Type: base.Type, Expr: &core.RecList{Target: target.Expr, Base: base, Step: step}}, nil

	case *src.IndList:
		target, err := Synth(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		lt, err := expectShape[*nbe.List](ctx, e.Target, val(target.Type), "a List type")
		if err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.Arrow("xs", lt, &nbe.Universe{}))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		base, err := Check(ctx, r, e.Base, nbe.DoAp(mv, &nbe.Nil{}))
		if err != nil {
			return nil, err
		}
		step, err := Check(ctx, r, e.Step, nbe.IndListStepType(lt.Elem, mv))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(mv, val(target.Expr)),
			&core.IndList{Target: target.Expr, Motive: motive, Base: base, Step: step}), nil

	case *src.IndAbsurd:
		target, err := Check(ctx, r, e.Target, &nbe.Absurd{})
		if err != nil {
			return nil, err
		}
		motive, err := IsType(ctx, r, e.Motive)
		if err != nil {
			return nil, err
		}
		return &core.The{Type: motive, Expr: &core.IndAbsurd{Target: target, Motive: motive}}, nil

	case *src.Replace:
		target, eq, err := synthEqual(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.Arrow("x", eq.Type, &nbe.Universe{}))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		base, err := Check(ctx, r, e.Base, nbe.DoAp(mv, eq.From))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(mv, eq.To), &core.Replace{Target: target.Expr, Motive: motive, Base: base}), nil

	case *src.Trans:
		left, l, err := synthEqual(ctx, r, e.Left)
		if err != nil {
			return nil, err
		}
		right, rt, err := synthEqual(ctx, r, e.Right)
		if err != nil {
			return nil, err
		}
		if err := SameType(ctx, e, rt.Type, l.Type); err != nil {
			return nil, err
		}
		if err := Convert(ctx, e, l.Type, l.To, rt.From); err != nil {
			return nil, err
		}
		return the(&nbe.Equal{Type: l.Type, From: l.From, To: rt.To}, &core.Trans{Left: left.Expr, Right: right.Expr}), nil

	case *src.Cong:
		target, eq, err := synthEqual(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		fun, err := Synth(ctx, r, e.Fun)
		if err != nil {
			return nil, err
		}
		pi, err := expectShape[*nbe.Pi](ctx, e.Fun, val(fun.Type), "a function type")
		if err != nil {
			return nil, err
		}
		if err := SameType(ctx, e, eq.Type, pi.Arg); err != nil {
			return nil, err
		}
		x := nbe.Fresh(ctx, pi.Name)
		codomain := nbe.ReadBackType(nbe.BindFree(ctx, x, pi.Arg), pi.Result.Apply(&nbe.Neu{Type: pi.Arg, Neutral: &nbe.NVar{Name: x}}))
		if core.Names(codomain).Contains(x) {
			return nil, stop(perr.WrongShape, e.Fun, "cong requires a non-dependent function, but its type is", fun.Type)
		}
		fv := val(fun.Expr)
		resultType := &nbe.Equal{Type: val(codomain), From: nbe.DoAp(fv, eq.From), To: nbe.DoAp(fv, eq.To)}
		return the(resultType, &core.Cong{Target: target.Expr, Codomain: codomain, Fun: fun.Expr}), nil

	case *src.Symm:
		target, eq, err := synthEqual(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		return the(&nbe.Equal{Type: eq.Type, From: eq.To, To: eq.From}, &core.Symm{Target: target.Expr}), nil

	case *src.IndEqual:
		target, eq, err := synthEqual(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.IndEqualMotiveType(eq.Type, eq.From))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		base, err := Check(ctx, r, e.Base, nbe.DoAp(nbe.DoAp(mv, eq.From), &nbe.Same{Value: eq.From}))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(nbe.DoAp(mv, eq.To), val(target.Expr)),
			&core.IndEqual{Target: target.Expr, Motive: motive, Base: base}), nil

	case *src.Head:
		vec, _, err := synthNonEmptyVec(ctx, r, e.Vec)
		if err != nil {
			return nil, err
		}
		return the(vec.elem, &core.Head{Vec: vec.expr}), nil
	case *src.Tail:
		vec, l, err := synthNonEmptyVec(ctx, r, e.Vec)
		if err != nil {
			return nil, err
		}
		return the(&nbe.Vec{Elem: vec.elem, Len: l.N}, &core.Tail{Vec: vec.expr}), nil

	case *src.IndVec:
		length, err := Check(ctx, r, e.Len, &nbe.Nat{})
		if err != nil {
			return nil, err
		}
		target, err := Synth(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		vt, err := expectShape[*nbe.Vec](ctx, e.Target, val(target.Type), "a Vec type")
		if err != nil {
			return nil, err
		}
		lv := val(length)
		if err := Convert(ctx, e.Len, &nbe.Nat{}, lv, vt.Len); err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.IndVecMotiveType(vt.Elem))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		base, err := Check(ctx, r, e.Base, nbe.DoAp(nbe.DoAp(mv, &nbe.Zero{}), &nbe.VecNil{}))
		if err != nil {
			return nil, err
		}
		step, err := Check(ctx, r, e.Step, nbe.IndVecStepType(vt.Elem, mv))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(nbe.DoAp(mv, lv), val(target.Expr)), &core.IndVec{
			Len: length, Target: target.Expr, Motive: motive, Base: base, Step: step,
		}), nil

	case *src.IndEither:
		target, err := Synth(ctx, r, e.Target)
		if err != nil {
			return nil, err
		}
		et, err := expectShape[*nbe.Either](ctx, e.Target, val(target.Type), "an Either type")
		if err != nil {
			return nil, err
		}
		motive, err := Check(ctx, r, e.Motive, nbe.Arrow("x", et, &nbe.Universe{}))
		if err != nil {
			return nil, err
		}
		mv := val(motive)
		left, err := Check(ctx, r, e.Left, nbe.PiType("x", et.Left, func(x nbe.Value) nbe.Value {
			return nbe.DoAp(mv, &nbe.Left{Value: x})
		}))
		if err != nil {
			return nil, err
		}
		right, err := Check(ctx, r, e.Right, nbe.PiType("x", et.Right, func(x nbe.Value) nbe.Value {
			return nbe.DoAp(mv, &nbe.Right{Value: x})
		}))
		if err != nil {
			return nil, err
		}
		return the(nbe.DoAp(mv, val(target.Expr)),
			&core.IndEither{Target: target.Expr, Motive: motive, Left: left, Right: right}), nil

	case *src.App:
		if len(e.Rands) == 0 {
			return nil, stop(perr.WrongShape, e, "An application needs at least one argument")
		}
		f, err := Synth(ctx, r, e.Rator)
		if err != nil {
			return nil, err
		}
		return synthApp(ctx, r, f, e.Rands)

	default:
		if isTypeFormer(e) {
			t, err := elabType(ctx, r, e, true)
			if err != nil {
				return nil, err
			}
			return &core.The{Type: &core.U{}, Expr: t}, nil
		}
		return nil, stop(perr.CannotSynth, e, "Can't determine a type for this expression; try adding a type annotation with the")
	}
}

// synthNatElim covers which-Nat, iter-Nat and rec-Nat, whose motive is the
// type of the base and whose step type depends only on it.
func synthNatElim(
	ctx nbe.Ctx,
	r Renaming,
	targetSrc, baseSrc, stepSrc src.Src,
	stepType func(baseType nbe.Value) nbe.Value,
	build func(target core.Core, base *core.The, step core.Core) core.Core,
) (*core.The, error) {
	target, err := Check(ctx, r, targetSrc, &nbe.Nat{})
	if err != nil {
		return nil, err
	}
	base, err := Synth(ctx, r, baseSrc)
	if err != nil {
		return nil, err
	}
	step, err := Check(ctx, r, stepSrc, stepType(nbe.ValInCtx(ctx, base.Type)))
	if err != nil {
		return nil, err
	}
	return &core.The{Type: base.Type, Expr: build(target, base, step)}, nil
}

func synthEqual(ctx nbe.Ctx, r Renaming, e src.Src) (*core.The, *nbe.Equal, error) {
	target, err := Synth(ctx, r, e)
	if err != nil {
		return nil, nil, err
	}
	eq, err := expectShape[*nbe.Equal](ctx, e, nbe.ValInCtx(ctx, target.Type), "an = type")
	if err != nil {
		return nil, nil, err
	}
	return target, eq, nil
}

type synthedVec struct {
	expr core.Core
	elem nbe.Value
}

func synthNonEmptyVec(ctx nbe.Ctx, r Renaming, e src.Src) (synthedVec, *nbe.Add1, error) {
	target, err := Synth(ctx, r, e)
	if err != nil {
		return synthedVec{}, nil, err
	}
	vt, err := expectShape[*nbe.Vec](ctx, e, nbe.ValInCtx(ctx, target.Type), "a Vec type")
	if err != nil {
		return synthedVec{}, nil, err
	}
	l, ok := nbe.Now(vt.Len).(*nbe.Add1)
	if !ok {
		return synthedVec{}, nil, stop(perr.WrongShape, e, "Expected a Vec with a length of the form (add1 n), but the length is",
			nbe.ReadBack(ctx, &nbe.Nat{}, vt.Len))
	}
	return synthedVec{expr: target.Expr, elem: vt.Elem}, l, nil
}

// synthApp applies f to each of rands in turn: (f a b) is ((f a) b).
func synthApp(ctx nbe.Ctx, r Renaming, f *core.The, rands []src.Src) (*core.The, error) {
	cur := f
	for _, rand := range rands {
		pi, err := expectShape[*nbe.Pi](ctx, rand, nbe.ValInCtx(ctx, cur.Type), "a function type")
		if err != nil {
			return nil, err
		}
		arg, err := Check(ctx, r, rand, pi.Arg)
		if err != nil {
			return nil, err
		}
		cur = &core.The{
			Type: nbe.ReadBackType(ctx, pi.Result.Apply(nbe.ValInCtx(ctx, arg))),
			Expr: &core.App{Rator: cur.Expr, Rand: arg},
		}
	}
	return cur, nil
}
