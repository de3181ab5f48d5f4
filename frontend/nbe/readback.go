package nbe

import (
	"fmt"

	"github.com/cottand/pie/frontend/core"
)

// ReadBack returns the normal form of v at type typ: β-normal and η-long.
// Natural numbers are always read back as a chain of add1 around zero.
func ReadBack(ctx Ctx, typ, v Value) core.Core {
	typ, v = Now(typ), Now(v)

	switch t := typ.(type) {
	case *Universe:
		return ReadBackType(ctx, v)
	case *Nat:
		switch n := v.(type) {
		case *Zero:
			return &core.Zero{}
		case *Add1:
			return &core.Add1{N: ReadBack(ctx, t, n.N)}
		}
	case *Pi:
		name := t.Name
		if lam, ok := v.(*Lam); ok {
			name = lam.Name
		}
		x := Fresh(ctx, name)
		xv := &Neu{Type: t.Arg, Neutral: &NVar{Name: x}}
		return &core.Lambda{
			Name: x,
			Body: ReadBack(BindFree(ctx, x, t.Arg), t.Result.Apply(xv), DoAp(v, xv)),
		}
	case *Sigma:
		car := DoCar(v)
		return &core.Cons{
			Car: ReadBack(ctx, t.Car, car),
			Cdr: ReadBack(ctx, t.Cdr.Apply(car), DoCdr(v)),
		}
	case *Trivial:
		return &core.Sole{}
	case *Absurd:
		if n, ok := v.(*Neu); ok {
			return &core.The{Type: &core.Absurd{}, Expr: ReadBackNeutral(ctx, n.Neutral)}
		}
	case *Equal:
		if s, ok := v.(*Same); ok {
			return &core.Same{Expr: ReadBack(ctx, t.Type, s.Value)}
		}
	case *Atom:
		if q, ok := v.(*Quote); ok {
			return &core.Quote{Symbol: q.Symbol}
		}
	case *List:
		switch l := v.(type) {
		case *Nil:
			return &core.Nil{}
		case *ListCons:
			return &core.ListCons{Head: ReadBack(ctx, t.Elem, l.Head), Tail: ReadBack(ctx, t, l.Tail)}
		}
	case *Vec:
		switch vs := v.(type) {
		case *VecNil:
			return &core.VecNil{}
		case *VecCons:
			if l, ok := Now(t.Len).(*Add1); ok {
				return &core.VecCons{
					Head: ReadBack(ctx, t.Elem, vs.Head),
					Tail: ReadBack(ctx, &Vec{Elem: t.Elem, Len: l.N}, vs.Tail),
				}
			}
		}
	case *Either:
		switch e := v.(type) {
		case *Left:
			return &core.Left{Expr: ReadBack(ctx, t.Left, e.Value)}
		case *Right:
			return &core.Right{Expr: ReadBack(ctx, t.Right, e.Value)}
		}
	}

	if n, ok := v.(*Neu); ok {
		return ReadBackNeutral(ctx, n.Neutral)
	}
	panic(fmt.Sprintf("cannot read back %T at type %T", v, typ))
}

// ReadBackType returns the normal form of a value that is itself a type.
func ReadBackType(ctx Ctx, v Value) core.Core {
	switch t := Now(v).(type) {
	case *Universe:
		return &core.U{}
	case *Nat:
		return &core.Nat{}
	case *Atom:
		return &core.Atom{}
	case *Trivial:
		return &core.Trivial{}
	case *Absurd:
		return &core.Absurd{}
	case *Pi:
		x := Fresh(ctx, t.Name)
		xv := &Neu{Type: t.Arg, Neutral: &NVar{Name: x}}
		return &core.Pi{
			Name: x,
			Arg:  ReadBackType(ctx, t.Arg),
			Body: ReadBackType(BindFree(ctx, x, t.Arg), t.Result.Apply(xv)),
		}
	case *Sigma:
		x := Fresh(ctx, t.Name)
		xv := &Neu{Type: t.Car, Neutral: &NVar{Name: x}}
		return &core.Sigma{
			Name: x,
			Car:  ReadBackType(ctx, t.Car),
			Cdr:  ReadBackType(BindFree(ctx, x, t.Car), t.Cdr.Apply(xv)),
		}
	case *Equal:
		return &core.Equal{
			Type: ReadBackType(ctx, t.Type),
			From: ReadBack(ctx, t.Type, t.From),
			To:   ReadBack(ctx, t.Type, t.To),
		}
	case *List:
		return &core.List{Elem: ReadBackType(ctx, t.Elem)}
	case *Vec:
		return &core.Vec{Elem: ReadBackType(ctx, t.Elem), Len: ReadBack(ctx, &Nat{}, t.Len)}
	case *Either:
		return &core.Either{Left: ReadBackType(ctx, t.Left), Right: ReadBackType(ctx, t.Right)}
	case *Neu:
		return ReadBackNeutral(ctx, t.Neutral)
	default:
		panic(fmt.Sprintf("%T is not a type", t))
	}
}

func readBackNorm(ctx Ctx, n Norm) core.Core {
	return ReadBack(ctx, n.Type, n.Value)
}

func readBackBase(ctx Ctx, n Norm) *core.The {
	return &core.The{Type: ReadBackType(ctx, n.Type), Expr: readBackNorm(ctx, n)}
}

// ReadBackNeutral rebuilds the Core elimination spine of a neutral term.
func ReadBackNeutral(ctx Ctx, ne Neutral) core.Core {
	rb := func(ne Neutral) core.Core { return ReadBackNeutral(ctx, ne) }
	norm := func(n Norm) core.Core { return readBackNorm(ctx, n) }

	switch ne := ne.(type) {
	case *NVar:
		return &core.Var{Name: ne.Name}
	case *NTODO:
		return &core.TODO{Loc: ne.Loc, Type: ReadBackType(ctx, ne.Type)}
	case *NAp:
		return &core.App{Rator: rb(ne.Rator), Rand: norm(ne.Rand)}
	case *NWhichNat:
		return &core.WhichNat{Target: rb(ne.Target), Base: readBackBase(ctx, ne.Base), Step: norm(ne.Step)}
	case *NIterNat:
		return &core.IterNat{Target: rb(ne.Target), Base: readBackBase(ctx, ne.Base), Step: norm(ne.Step)}
	case *NRecNat:
		return &core.RecNat{Target: rb(ne.Target), Base: readBackBase(ctx, ne.Base), Step: norm(ne.Step)}
	case *NIndNat:
		return &core.IndNat{Target: rb(ne.Target), Motive: norm(ne.Motive), Base: norm(ne.Base), Step: norm(ne.Step)}
	case *NCar:
		return &core.Car{Pair: rb(ne.Target)}
	case *NCdr:
		return &core.Cdr{Pair: rb(ne.Target)}
	case *NRecList:
		return &core.RecList{Target: rb(ne.Target), Base: readBackBase(ctx, ne.Base), Step: norm(ne.Step)}
	case *NIndList:
		return &core.IndList{Target: rb(ne.Target), Motive: norm(ne.Motive), Base: norm(ne.Base), Step: norm(ne.Step)}
	case *NIndAbsurd:
		return &core.IndAbsurd{
			Target: &core.The{Type: &core.Absurd{}, Expr: rb(ne.Target)},
			Motive: ReadBackType(ctx, ne.Motive.Value),
		}
	case *NReplace:
		return &core.Replace{Target: rb(ne.Target), Motive: norm(ne.Motive), Base: norm(ne.Base)}
	case *NTrans1:
		return &core.Trans{Left: rb(ne.Left), Right: norm(ne.Right)}
	case *NTrans2:
		return &core.Trans{Left: norm(ne.Left), Right: rb(ne.Right)}
	case *NTrans12:
		return &core.Trans{Left: rb(ne.Left), Right: rb(ne.Right)}
	case *NCong:
		return &core.Cong{Target: rb(ne.Target), Codomain: ReadBackType(ctx, ne.Codomain), Fun: norm(ne.Fun)}
	case *NSymm:
		return &core.Symm{Target: rb(ne.Target)}
	case *NIndEqual:
		return &core.IndEqual{Target: rb(ne.Target), Motive: norm(ne.Motive), Base: norm(ne.Base)}
	case *NHead:
		return &core.Head{Vec: rb(ne.Target)}
	case *NTail:
		return &core.Tail{Vec: rb(ne.Target)}
	case *NIndVec2:
		return &core.IndVec{
			Len: norm(ne.Len), Target: rb(ne.Target),
			Motive: norm(ne.Motive), Base: norm(ne.Base), Step: norm(ne.Step),
		}
	case *NIndVec12:
		return &core.IndVec{
			Len: rb(ne.Len), Target: rb(ne.Target),
			Motive: norm(ne.Motive), Base: norm(ne.Base), Step: norm(ne.Step),
		}
	case *NIndEither:
		return &core.IndEither{Target: rb(ne.Target), Motive: norm(ne.Motive), Left: norm(ne.Left), Right: norm(ne.Right)}
	default:
		panic(fmt.Sprintf("cannot read back neutral %T", ne))
	}
}
