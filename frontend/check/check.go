// Package check elaborates Pie source syntax into Core, checking it along
// the way.
//
// Checking is bidirectional: Synth works out the type of an expression,
// Check confirms that an expression has a given type, and IsType confirms
// that an expression is a type. All three return the elaborated Core, in
// which every bound variable has been renamed apart from the context.
package check

import (
	"fmt"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
	"github.com/cottand/pie/internal/log"
)

var checkLogger = log.DefaultLogger.With("section", "check")

func stop(code perr.ErrCode, at src.Positioner, message ...any) error {
	s := perr.New(code, at, message...)
	checkLogger.Debug("checking stopped", "at", s.Range.String(), "error", s.Text())
	return s
}

// expectShape forces tv and returns it if it is a T, so that rules can
// require, say, a Π type.
func expectShape[T nbe.Value](ctx nbe.Ctx, at src.Positioner, tv nbe.Value, what string) (T, error) {
	if t, ok := nbe.Now(tv).(T); ok {
		return t, nil
	}
	var zero T
	return zero, stop(perr.WrongShape, at, "Expected", what, "but the type is", nbe.ReadBackType(ctx, tv))
}

func checkName(site src.BindingSite) error {
	if !core.IsVarName(site.Name) {
		return stop(perr.BadName, site, fmt.Sprintf("Expected a variable name but found %q", site.Name))
	}
	return nil
}

// Check elaborates e, which must have the type tv.
func Check(ctx nbe.Ctx, r Renaming, e src.Src, tv nbe.Value) (core.Core, error) {
	switch e := e.(type) {
	case *src.Lambda:
		if len(e.Params) == 0 {
			return nil, stop(perr.WrongShape, e, "A λ must bind at least one variable")
		}
		return checkLambda(ctx, r, e.Params, e.Body, tv)

	case *src.Cons:
		sigma, err := expectShape[*nbe.Sigma](ctx, e, tv, "a Σ type")
		if err != nil {
			return nil, err
		}
		car, err := Check(ctx, r, e.Car, sigma.Car)
		if err != nil {
			return nil, err
		}
		cdr, err := Check(ctx, r, e.Cdr, sigma.Cdr.Apply(nbe.ValInCtx(ctx, car)))
		if err != nil {
			return nil, err
		}
		return &core.Cons{Car: car, Cdr: cdr}, nil

	case *src.Nil:
		if _, err := expectShape[*nbe.List](ctx, e, tv, "a List type"); err != nil {
			return nil, err
		}
		return &core.Nil{}, nil

	case *src.Same:
		eq, err := expectShape[*nbe.Equal](ctx, e, tv, "an = type")
		if err != nil {
			return nil, err
		}
		c, err := Check(ctx, r, e.Expr, eq.Type)
		if err != nil {
			return nil, err
		}
		v := nbe.ValInCtx(ctx, c)
		if err := Convert(ctx, e, eq.Type, eq.From, v); err != nil {
			return nil, err
		}
		if err := Convert(ctx, e, eq.Type, eq.To, v); err != nil {
			return nil, err
		}
		return &core.Same{Expr: c}, nil

	case *src.VecNil:
		vec, err := expectShape[*nbe.Vec](ctx, e, tv, "a Vec type")
		if err != nil {
			return nil, err
		}
		if _, ok := nbe.Now(vec.Len).(*nbe.Zero); !ok {
			return nil, stop(perr.WrongShape, e, "vecnil requires length zero, but the length is",
				nbe.ReadBack(ctx, &nbe.Nat{}, vec.Len))
		}
		return &core.VecNil{}, nil

	case *src.VecCons:
		vec, err := expectShape[*nbe.Vec](ctx, e, tv, "a Vec type")
		if err != nil {
			return nil, err
		}
		l, ok := nbe.Now(vec.Len).(*nbe.Add1)
		if !ok {
			return nil, stop(perr.WrongShape, e, "vec:: requires a length of the form (add1 n), but the length is",
				nbe.ReadBack(ctx, &nbe.Nat{}, vec.Len))
		}
		head, err := Check(ctx, r, e.Head, vec.Elem)
		if err != nil {
			return nil, err
		}
		tail, err := Check(ctx, r, e.Tail, &nbe.Vec{Elem: vec.Elem, Len: l.N})
		if err != nil {
			return nil, err
		}
		return &core.VecCons{Head: head, Tail: tail}, nil

	case *src.Left:
		either, err := expectShape[*nbe.Either](ctx, e, tv, "an Either type")
		if err != nil {
			return nil, err
		}
		c, err := Check(ctx, r, e.Expr, either.Left)
		if err != nil {
			return nil, err
		}
		return &core.Left{Expr: c}, nil

	case *src.Right:
		either, err := expectShape[*nbe.Either](ctx, e, tv, "an Either type")
		if err != nil {
			return nil, err
		}
		c, err := Check(ctx, r, e.Expr, either.Right)
		if err != nil {
			return nil, err
		}
		return &core.Right{Expr: c}, nil

	case *src.Hole:
		typ := nbe.ReadBackType(ctx, tv)
		checkLogger.Info("unfinished expression", "at", e.Range.String(), "type", typ)
		return &core.TODO{Loc: e.Range, Type: typ}, nil

	default:
		the, err := Synth(ctx, r, e)
		if err != nil {
			return nil, err
		}
		if err := SameType(ctx, e, nbe.ValInCtx(ctx, the.Type), tv); err != nil {
			return nil, err
		}
		return the.Expr, nil
	}
}

func checkLambda(ctx nbe.Ctx, r Renaming, params []src.BindingSite, body src.Src, tv nbe.Value) (core.Core, error) {
	if len(params) == 0 {
		return Check(ctx, r, body, tv)
	}
	site := params[0]
	if err := checkName(site); err != nil {
		return nil, err
	}
	pi, err := expectShape[*nbe.Pi](ctx, site, tv, "a function type")
	if err != nil {
		return nil, err
	}
	x := nbe.Fresh(ctx, site.Name)
	xv := &nbe.Neu{Type: pi.Arg, Neutral: &nbe.NVar{Name: x}}
	b, err := checkLambda(nbe.BindFree(ctx, x, pi.Arg), r.Extend(site.Name, x), params[1:], body, pi.Result.Apply(xv))
	if err != nil {
		return nil, err
	}
	return &core.Lambda{Name: x, Body: b}, nil
}

// Convert succeeds when v1 and v2 are the same value of type tv, that is
// when their normal forms are α-equivalent.
func Convert(ctx nbe.Ctx, at src.Positioner, tv, v1, v2 nbe.Value) error {
	c1 := nbe.ReadBack(ctx, tv, v1)
	c2 := nbe.ReadBack(ctx, tv, v2)
	if core.AlphaEquiv(c1, c2) {
		return nil
	}
	return stop(perr.NotSame, at, "The expressions", c1, "and", c2, "are not the same", nbe.ReadBackType(ctx, tv))
}

// SameType succeeds when given and expected are the same type.
func SameType(ctx nbe.Ctx, at src.Positioner, given, expected nbe.Value) error {
	g := nbe.ReadBackType(ctx, given)
	x := nbe.ReadBackType(ctx, expected)
	if core.AlphaEquiv(g, x) {
		return nil
	}
	return stop(perr.TypeMismatch, at, "Expected", x, "but given", g)
}
