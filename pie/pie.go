// Package pie exposes the user-facing operations of the kernel: checking an
// expression and showing its normal form, deciding whether two expressions
// are the same, and processing a sequence of declarations.
package pie

import (
	"errors"

	"github.com/cottand/pie/frontend/check"
	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
	"github.com/cottand/pie/internal/log"
)

var pieLogger = log.DefaultLogger.With("section", "pie")

// Rep synthesizes the type of e and returns (the T v), where T and v are
// the normal forms of its type and value.
func Rep(ctx nbe.Ctx, e src.Src) (core.Core, error) {
	the, err := check.Synth(ctx, check.NoRenaming(), e)
	if err != nil {
		return nil, err
	}
	tv := nbe.ValInCtx(ctx, the.Type)
	v := nbe.ValInCtx(ctx, the.Expr)
	return &core.The{
		Type: nbe.ReadBackType(ctx, tv),
		Expr: nbe.ReadBack(ctx, tv, v),
	}, nil
}

// NormType checks that e is a type and returns its normal form.
func NormType(ctx nbe.Ctx, e src.Src) (core.Core, error) {
	t, err := check.IsType(ctx, check.NoRenaming(), e)
	if err != nil {
		return nil, err
	}
	return nbe.ReadBackType(ctx, nbe.ValInCtx(ctx, t)), nil
}

// Norm is Rep, except that expressions that are types without having a
// type, such as U, are normalized as types. When both fail the error from
// Rep is returned.
func Norm(ctx nbe.Ctx, e src.Src) (core.Core, error) {
	res, err := Rep(ctx, e)
	if err == nil {
		return res, nil
	}
	t, typeErr := NormType(ctx, e)
	if typeErr != nil {
		return nil, err
	}
	return t, nil
}

// CheckSame checks that a and b are both of type typ, and that they are
// the same typ.
func CheckSame(ctx nbe.Ctx, at src.Positioner, typ, a, b src.Src) error {
	r := check.NoRenaming()
	t, err := check.IsType(ctx, r, typ)
	if err != nil {
		return err
	}
	tv := nbe.ValInCtx(ctx, t)
	ac, err := check.Check(ctx, r, a, tv)
	if err != nil {
		return err
	}
	bc, err := check.Check(ctx, r, b, tv)
	if err != nil {
		return err
	}
	return check.Convert(ctx, at, tv, nbe.ValInCtx(ctx, ac), nbe.ValInCtx(ctx, bc))
}

// AsStop returns the *perr.Stop in err's chain, if any.
func AsStop(err error) (*perr.Stop, bool) {
	var s *perr.Stop
	ok := errors.As(err, &s)
	return s, ok
}
