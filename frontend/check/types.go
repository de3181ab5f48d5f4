package check

import (
	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
)

// IsType elaborates e, which must be a type.
func IsType(ctx nbe.Ctx, r Renaming, e src.Src) (core.Core, error) {
	return elabType(ctx, r, e, false)
}

func isTypeFormer(e src.Src) bool {
	switch e.(type) {
	case *src.U, *src.Nat, *src.Atom, *src.Trivial, *src.Absurd,
		*src.Arrow, *src.Pi, *src.Sigma, *src.Pair,
		*src.List, *src.Vec, *src.Equal, *src.Either:
		return true
	}
	return false
}

// elabType elaborates a type former. When inU is set the type must also be
// a member of U, so its component types are checked against U rather than
// merely being types, and U itself is rejected.
func elabType(ctx nbe.Ctx, r Renaming, e src.Src, inU bool) (core.Core, error) {
	sub := func(ctx nbe.Ctx, r Renaming, e src.Src) (core.Core, error) {
		if inU {
			return Check(ctx, r, e, &nbe.Universe{})
		}
		return IsType(ctx, r, e)
	}

	switch e := e.(type) {
	case *src.U:
		if inU {
			return nil, stop(perr.CannotSynth, e, "U is a type, but it does not have a type")
		}
		return &core.U{}, nil
	case *src.Nat:
		return &core.Nat{}, nil
	case *src.Atom:
		return &core.Atom{}, nil
	case *src.Trivial:
		return &core.Trivial{}, nil
	case *src.Absurd:
		return &core.Absurd{}, nil

	case *src.Arrow:
		if len(e.Args) < 2 {
			return nil, stop(perr.WrongShape, e, "→ needs an argument type and a result type")
		}
		return elabArrow(ctx, r, e.Args, sub)

	case *src.Pi:
		if len(e.Binders) == 0 {
			return nil, stop(perr.WrongShape, e, "Π must bind at least one variable")
		}
		return elabBinders(ctx, r, e.Binders, e.Body, sub, func(x string, a, b core.Core) core.Core {
			return &core.Pi{Name: x, Arg: a, Body: b}
		})

	case *src.Sigma:
		if len(e.Binders) == 0 {
			return nil, stop(perr.WrongShape, e, "Σ must bind at least one variable")
		}
		return elabBinders(ctx, r, e.Binders, e.Body, sub, func(x string, a, d core.Core) core.Core {
			return &core.Sigma{Name: x, Car: a, Cdr: d}
		})

	case *src.Pair:
		a, err := sub(ctx, r, e.Car)
		if err != nil {
			return nil, err
		}
		d, err := sub(ctx, r, e.Cdr)
		if err != nil {
			return nil, err
		}
		return &core.Sigma{Name: nbe.FreshBinder(ctx, d, "x"), Car: a, Cdr: d}, nil

	case *src.List:
		elem, err := sub(ctx, r, e.Elem)
		if err != nil {
			return nil, err
		}
		return &core.List{Elem: elem}, nil

	case *src.Vec:
		elem, err := sub(ctx, r, e.Elem)
		if err != nil {
			return nil, err
		}
		l, err := Check(ctx, r, e.Len, &nbe.Nat{})
		if err != nil {
			return nil, err
		}
		return &core.Vec{Elem: elem, Len: l}, nil

	case *src.Equal:
		t, err := sub(ctx, r, e.Type)
		if err != nil {
			return nil, err
		}
		tv := nbe.ValInCtx(ctx, t)
		from, err := Check(ctx, r, e.From, tv)
		if err != nil {
			return nil, err
		}
		to, err := Check(ctx, r, e.To, tv)
		if err != nil {
			return nil, err
		}
		return &core.Equal{Type: t, From: from, To: to}, nil

	case *src.Either:
		left, err := sub(ctx, r, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := sub(ctx, r, e.Right)
		if err != nil {
			return nil, err
		}
		return &core.Either{Left: left, Right: right}, nil

	default:
		// any expression of type U is a type
		return Check(ctx, r, e, &nbe.Universe{})
	}
}

type subType func(ctx nbe.Ctx, r Renaming, e src.Src) (core.Core, error)

// elabArrow elaborates (→ A B ... Z) as nested non-dependent Π types. The
// result is elaborated first so that the binder can be chosen to avoid
// every name in it.
func elabArrow(ctx nbe.Ctx, r Renaming, args []src.Src, sub subType) (core.Core, error) {
	a, err := sub(ctx, r, args[0])
	if err != nil {
		return nil, err
	}
	var rest core.Core
	if len(args) == 2 {
		rest, err = sub(ctx, r, args[1])
	} else {
		rest, err = elabArrow(ctx, r, args[1:], sub)
	}
	if err != nil {
		return nil, err
	}
	return &core.Pi{Name: nbe.FreshBinder(ctx, rest, "x"), Arg: a, Body: rest}, nil
}

func elabBinders(
	ctx nbe.Ctx,
	r Renaming,
	binders []src.TypedBinder,
	body src.Src,
	sub subType,
	build func(x string, a, b core.Core) core.Core,
) (core.Core, error) {
	if len(binders) == 0 {
		return sub(ctx, r, body)
	}
	b := binders[0]
	if err := checkName(b.Site); err != nil {
		return nil, err
	}
	a, err := sub(ctx, r, b.Type)
	if err != nil {
		return nil, err
	}
	x := nbe.Fresh(ctx, b.Site.Name)
	inner, err := elabBinders(nbe.BindFree(ctx, x, nbe.ValInCtx(ctx, a)), r.Extend(b.Site.Name, x), binders[1:], body, sub, build)
	if err != nil {
		return nil, err
	}
	return build(x, a, inner), nil
}
