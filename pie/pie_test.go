package pie

import (
	"testing"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
	. "github.com/cottand/pie/frontend/src/srctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noLoc = src.Range{}

func TestRep(t *testing.T) {
	ctx := nbe.InitCtx()

	res, err := Rep(ctx, The(Nat(), N(2)))
	require.NoError(t, err)
	assert.Equal(t, "(the Nat (add1 (add1 zero)))", core.String(res))

	res, err = Rep(ctx, App(The(Arrow(Nat(), Nat()), Lam([]string{"n"}, V("n"))), Zero()))
	require.NoError(t, err)
	assert.Equal(t, "(the Nat zero)", core.String(res))
}

func TestRepFailure(t *testing.T) {
	_, err := Rep(nbe.InitCtx(), The(Atom(), N(5)))
	require.Error(t, err)
	stop, ok := AsStop(err)
	require.True(t, ok)
	assert.Equal(t, perr.TypeMismatch, stop.Code())
	assert.Contains(t, stop.Error(), "Atom")
	assert.Contains(t, stop.Error(), "Nat")
}

func TestNorm(t *testing.T) {
	ctx := nbe.InitCtx()

	res, err := Norm(ctx, U())
	require.NoError(t, err)
	assert.Equal(t, "U", core.String(res))

	res, err = Norm(ctx, Nat())
	require.NoError(t, err)
	assert.Equal(t, "(the U Nat)", core.String(res))

	_, err = Norm(ctx, Lam([]string{"x"}, V("x")))
	stop, ok := AsStop(err)
	require.True(t, ok)
	assert.Equal(t, perr.CannotSynth, stop.Code())
}

func TestNormType(t *testing.T) {
	ctx := nbe.InitCtx()

	res, err := NormType(ctx, Vec(Atom(), App(The(Arrow(Nat(), Nat()), Lam([]string{"n"}, Add1(V("n")))), N(1))))
	require.NoError(t, err)
	assert.Equal(t, "(Vec Atom (add1 (add1 zero)))", core.String(res))

	_, err = NormType(ctx, Zero())
	assert.Error(t, err)
}

func TestCheckSame(t *testing.T) {
	ctx := nbe.InitCtx()
	ctx = nbe.BindFree(ctx, "f", nbe.Arrow("x", &nbe.Nat{}, &nbe.Nat{}))
	ctx = nbe.BindFree(ctx, "t", &nbe.Trivial{})
	ctx = nbe.BindFree(ctx, "none", &nbe.Vec{Elem: &nbe.Nat{}, Len: &nbe.Zero{}})
	ctx = nbe.BindFree(ctx, "one", &nbe.Vec{Elem: &nbe.Nat{}, Len: &nbe.Add1{N: &nbe.Zero{}}})

	testCases := []struct {
		name    string
		typ     src.Src
		a, b    src.Src
		errCode perr.ErrCode
	}{
		{
			name: "one is one",
			typ:  Nat(),
			a:    Add1(Zero()),
			b:    The(Nat(), N(1)),
		},
		{
			name:    "one is not two",
			typ:     Nat(),
			a:       N(1),
			b:       N(2),
			errCode: perr.NotSame,
		},
		{
			name: "functions are η-equal",
			typ:  Arrow(Nat(), Nat()),
			a:    V("f"),
			b:    Lam([]string{"y"}, App(V("f"), V("y"))),
		},
		{
			name: "every Trivial is sole",
			typ:  Trivial(),
			a:    V("t"),
			b:    Sole(),
		},
		{
			name: "pairs are η-equal",
			typ:  Pair(Nat(), Atom()),
			a:    The(Pair(Nat(), Atom()), Cons(N(1), Quote("a"))),
			b:    Cons(Car(The(Pair(Nat(), Atom()), Cons(N(1), Quote("b")))), Quote("a")),
		},
		{
			name:    "a neutral empty vector is not vecnil",
			typ:     Vec(Nat(), Zero()),
			a:       V("none"),
			b:       VecNil(),
			errCode: perr.NotSame,
		},
		{
			name:    "a neutral vector is not its own expansion",
			typ:     Vec(Nat(), N(1)),
			a:       V("one"),
			b:       VecCons(Head(V("one")), VecNil()),
			errCode: perr.NotSame,
		},
		{
			name: "a vector is itself",
			typ:  Vec(Nat(), N(1)),
			a:    V("one"),
			b:    The(Vec(Nat(), N(1)), V("one")),
		},
		{
			name:    "ill-typed side",
			typ:     Atom(),
			a:       Quote("a"),
			b:       N(0),
			errCode: perr.TypeMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSame(ctx, noLoc, tc.typ, tc.a, tc.b)
			if tc.errCode == perr.None {
				assert.NoError(t, err)
				return
			}
			stop, ok := AsStop(err)
			require.True(t, ok, "expected a stop, got %v", err)
			assert.Equal(t, tc.errCode, stop.Code(), stop.Error())
		})
	}
}

func TestDuplicateFreeBindingIsFatal(t *testing.T) {
	ctx := nbe.BindFree(nbe.InitCtx(), "x", &nbe.Nat{})
	assert.Panics(t, func() {
		nbe.BindFree(ctx, "x", &nbe.Atom{})
	})
}
