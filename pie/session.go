package pie

import (
	"fmt"

	"github.com/cottand/pie/frontend/check"
	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
)

// Session processes top-level declarations in order. A failed declaration
// is recorded and leaves the context as it was, so that later independent
// declarations can still be checked.
type Session struct {
	ctx    nbe.Ctx
	errors *perr.Errors
}

func NewSession() *Session {
	return &Session{ctx: nbe.InitCtx()}
}

// Ctx returns the context built by the successful declarations so far.
func (s *Session) Ctx() nbe.Ctx { return s.ctx }

// Errors returns every failure recorded so far, in order.
func (s *Session) Errors() *perr.Errors { return s.errors }

func (s *Session) record(op string, err error) error {
	if err == nil {
		return nil
	}
	if stop, ok := AsStop(err); ok {
		s.errors = s.errors.With(stop)
	}
	pieLogger.Info("declaration failed", "op", op, "error", err)
	return err
}

// Claim declares that name will be defined with type typ.
func (s *Session) Claim(at src.Positioner, name string, typ src.Src) error {
	if !core.IsVarName(name) {
		return s.record("claim", perr.New(perr.BadName, at, fmt.Sprintf("Can't claim %q, it is not a variable name", name)))
	}
	if s.ctx.IsBound(name) {
		return s.record("claim", perr.New(perr.Declaration, at, "The name", name, "is already in use"))
	}
	t, err := check.IsType(s.ctx, check.NoRenaming(), typ)
	if err != nil {
		return s.record("claim", err)
	}
	s.ctx = nbe.BindClaim(s.ctx, name, nbe.ValInCtx(s.ctx, t))
	pieLogger.Debug("claimed", "name", name, "type", t)
	return nil
}

// Define gives a value to a name that has been claimed but not yet
// defined. The claim is not in scope while checking expr.
func (s *Session) Define(at src.Positioner, name string, expr src.Src) error {
	b, ok := s.ctx.Lookup(name)
	if !ok {
		return s.record("define", perr.New(perr.Declaration, at, "Can't define", name, "before claiming it"))
	}
	claim, ok := b.(*nbe.Claim)
	if !ok {
		return s.record("define", perr.New(perr.Declaration, at, "The name", name, "is already defined"))
	}
	c, err := check.Check(s.ctx, check.NoRenaming(), expr, claim.Type)
	if err != nil {
		return s.record("define", err)
	}
	s.ctx = nbe.BindVal(s.ctx, name, claim.Type, nbe.ValInCtx(s.ctx, c))
	pieLogger.Debug("defined", "name", name, "value", c)
	return nil
}

// CheckSame is CheckSame in the session context.
func (s *Session) CheckSame(at src.Positioner, typ, a, b src.Src) error {
	return s.record("check-same", CheckSame(s.ctx, at, typ, a, b))
}

// Norm is Norm in the session context.
func (s *Session) Norm(e src.Src) (core.Core, error) {
	res, err := Norm(s.ctx, e)
	if err != nil {
		return nil, s.record("norm", err)
	}
	return res, nil
}

// Export returns the session context with every entry read back to Core.
func (s *Session) Export() []nbe.ExportedBinder {
	return nbe.ExportCtx(s.ctx)
}
