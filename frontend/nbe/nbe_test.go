package nbe

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cottand/pie/frontend/core"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nat(n int) core.Core {
	var c core.Core = &core.Zero{}
	for range n {
		c = &core.Add1{N: c}
	}
	return c
}

func neu(typ Value, name string) *Neu {
	return &Neu{Type: typ, Neutral: &NVar{Name: name}}
}

// plus is (λ (a b) (rec-Nat a b (λ (k ih) (add1 ih)))).
var plus = &core.Lambda{Name: "a", Body: &core.Lambda{Name: "b", Body: &core.RecNat{
	Target: &core.Var{Name: "a"},
	Base:   &core.The{Type: &core.Nat{}, Expr: &core.Var{Name: "b"}},
	Step: &core.Lambda{Name: "k", Body: &core.Lambda{Name: "ih", Body: &core.Add1{
		N: &core.Var{Name: "ih"},
	}}},
}}}

var natToNatToNat = Arrow("x", &Nat{}, Arrow("y", &Nat{}, &Nat{}))

func TestEvalNatLiteral(t *testing.T) {
	v := Eval(Env{}, &core.NatLit{N: 3})
	got := ReadBack(InitCtx(), &Nat{}, v)
	assert.Empty(t, cmp.Diff(nat(3), got))
}

func TestEvalRecNat(t *testing.T) {
	app := &core.App{Rator: &core.App{Rator: plus, Rand: &core.NatLit{N: 2}}, Rand: &core.NatLit{N: 3}}
	got := ReadBack(InitCtx(), &Nat{}, Eval(Env{}, app))
	assert.Empty(t, cmp.Diff(nat(5), got))
}

func TestEvalStuckOnNeutral(t *testing.T) {
	ctx := BindFree(InitCtx(), "n", &Nat{})
	app := &core.App{Rator: &core.App{Rator: plus, Rand: &core.Var{Name: "n"}}, Rand: &core.Zero{}}

	got := ReadBack(ctx, &Nat{}, ValInCtx(ctx, app))
	rec, ok := got.(*core.RecNat)
	require.True(t, ok, "expected a stuck rec-Nat, got %s", core.String(got))
	assert.Equal(t, &core.Var{Name: "n"}, rec.Target)
	assert.True(t, core.IsCore(got))
}

func TestReadBackEta(t *testing.T) {
	natToNat := Arrow("x", &Nat{}, &Nat{})
	pair := &Sigma{Name: "x", Car: &Nat{}, Cdr: &HOClosure{Name: "x", Fun: func(Value) Value { return &Atom{} }}}
	vec2 := &Vec{Elem: &Atom{}, Len: &Add1{N: &Add1{N: &Zero{}}}}

	ctx := InitCtx()
	ctx = BindFree(ctx, "f", natToNat)
	ctx = BindFree(ctx, "p", pair)
	ctx = BindFree(ctx, "t", &Trivial{})
	ctx = BindFree(ctx, "es", vec2)

	testCases := []struct {
		name     string
		typ      Value
		value    Value
		expected string
	}{
		{
			name:     "functions are η-expanded",
			typ:      natToNat,
			value:    neu(natToNat, "f"),
			expected: "(λ (x) (f x))",
		},
		{
			name:     "pairs are η-expanded",
			typ:      pair,
			value:    neu(pair, "p"),
			expected: "(cons (car p) (cdr p))",
		},
		{
			name:     "every Trivial is sole",
			typ:      &Trivial{},
			value:    neu(&Trivial{}, "t"),
			expected: "sole",
		},
		{
			name:     "neutral vectors stay neutral",
			typ:      vec2,
			value:    neu(vec2, "es"),
			expected: "es",
		},
		{
			name:     "neutral vectors of length zero are not vecnil",
			typ:      &Vec{Elem: &Atom{}, Len: &Zero{}},
			value:    neu(&Vec{Elem: &Atom{}, Len: &Zero{}}, "es"),
			expected: "es",
		},
		{
			name:     "vec:: reads back element by element",
			typ:      vec2,
			value:    &VecCons{Head: &Quote{Symbol: "a"}, Tail: &VecCons{Head: neu(&Atom{}, "t"), Tail: &VecNil{}}},
			expected: "(vec:: 'a (vec:: t vecnil))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReadBack(ctx, tc.typ, tc.value)
			assert.Equal(t, tc.expected, core.String(got))
			assert.True(t, core.IsCore(got))
		})
	}
}

func TestReadBackAbsurdIsAnnotated(t *testing.T) {
	ctx := BindFree(InitCtx(), "x", &Absurd{})
	got := ReadBack(ctx, &Absurd{}, neu(&Absurd{}, "x"))
	assert.Equal(t, "(the Absurd x)", core.String(got))
}

func TestReadBackAvoidsCapture(t *testing.T) {
	// the λ's own binder name is already taken by a free variable
	ctx := BindFree(InitCtx(), "x", &Nat{})
	ident := Eval(Env{}, &core.Lambda{Name: "x", Body: &core.Var{Name: "x"}})
	constX := ValInCtx(ctx, &core.Lambda{Name: "y", Body: &core.Var{Name: "x"}})
	natToNat := Arrow("x", &Nat{}, &Nat{})

	assert.Equal(t, "(λ (x₁) x₁)", core.String(ReadBack(ctx, natToNat, ident)))
	assert.Equal(t, "(λ (y) x)", core.String(ReadBack(ctx, natToNat, constX)))
}

func TestReadBackIsIdempotent(t *testing.T) {
	ctx := BindFree(InitCtx(), "n", &Nat{})
	terms := []struct {
		typ  Value
		term core.Core
	}{
		{typ: natToNatToNat, term: plus},
		{typ: &Nat{}, term: &core.App{Rator: &core.App{Rator: plus, Rand: &core.Var{Name: "n"}}, Rand: &core.NatLit{N: 1}}},
		{typ: &Nat{}, term: &core.App{Rator: &core.App{Rator: plus, Rand: &core.NatLit{N: 1}}, Rand: &core.Var{Name: "n"}}},
	}
	for _, tc := range terms {
		once := ReadBack(ctx, tc.typ, ValInCtx(ctx, tc.term))
		twice := ReadBack(ctx, tc.typ, ValInCtx(ctx, once))
		assert.True(t, core.AlphaEquiv(once, twice), "%s is not %s", core.String(once), core.String(twice))
	}
}

func TestDoIndNatComputes(t *testing.T) {
	// (ind-Nat 3 (λ (k) Nat) 0 (λ (k ih) (add1 (add1 ih)))) doubles 3
	motive := &Lam{Name: "k", Body: &HOClosure{Name: "k", Fun: func(Value) Value { return &Nat{} }}}
	step := &Lam{Name: "k", Body: &HOClosure{Name: "k", Fun: func(Value) Value {
		return &Lam{Name: "ih", Body: &HOClosure{Name: "ih", Fun: func(ih Value) Value {
			return &Add1{N: &Add1{N: ih}}
		}}}
	}}}
	got := DoIndNat(Eval(Env{}, &core.NatLit{N: 3}), motive, &Zero{}, step)
	assert.Empty(t, cmp.Diff(nat(6), ReadBack(InitCtx(), &Nat{}, got)))
}

func TestDoTransAndSymm(t *testing.T) {
	eq := &Equal{Type: &Nat{}, From: &Zero{}, To: &Add1{N: &Zero{}}}
	ctx := BindFree(InitCtx(), "p", eq)

	trans := DoTrans(neu(eq, "p"), &Same{Value: &Add1{N: &Zero{}}})
	assert.Equal(t, "(trans p (same (add1 zero)))", core.String(ReadBack(ctx, eq, trans)))

	symm := DoSymm(neu(eq, "p"))
	flipped := &Equal{Type: &Nat{}, From: &Add1{N: &Zero{}}, To: &Zero{}}
	assert.Equal(t, "(symm p)", core.String(ReadBack(ctx, flipped, symm)))

	assert.IsType(t, &Same{}, DoSymm(&Same{Value: &Zero{}}))
}

func TestDelayForcesOnce(t *testing.T) {
	var calls atomic.Int32
	d := Suspend(func() Value {
		calls.Add(1)
		return &Zero{}
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.IsType(t, &Zero{}, Now(d))
		}()
	}
	wg.Wait()

	assert.IsType(t, &Zero{}, d.Force())
	assert.EqualValues(t, 1, calls.Load())
}

func TestDelayNestedIsFlattened(t *testing.T) {
	inner := Suspend(func() Value { return &Sole{} })
	outer := Suspend(func() Value { return inner })
	assert.IsType(t, &Sole{}, Now(outer))
}

func TestExportCtx(t *testing.T) {
	ctx := InitCtx()
	ctx = BindClaim(ctx, "two", &Nat{})
	ctx = BindVal(ctx, "two", &Nat{}, Eval(Env{}, &core.NatLit{N: 2}))
	ctx = BindFree(ctx, "f", Arrow("x", &Nat{}, &Nat{}))

	exported := ExportCtx(ctx)
	require.Len(t, exported, 3)

	assert.Equal(t, "f", exported[0].Name)
	assert.Equal(t, KindFree, exported[0].Kind)
	assert.Equal(t, "(Π ((x Nat)) Nat)", core.String(exported[0].Type))
	assert.Nil(t, exported[0].Value)

	assert.Equal(t, KindDef, exported[1].Kind)
	assert.Empty(t, cmp.Diff(nat(2), exported[1].Value))

	assert.Equal(t, KindClaim, exported[2].Kind)

	out, err := json.Marshal(exported)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name": "f", "kind": "free", "type": "(Π ((x Nat)) Nat)"},
		{"name": "two", "kind": "def", "type": "Nat", "value": "(add1 (add1 zero))"},
		{"name": "two", "kind": "claim", "type": "Nat"}
	]`, string(out))
}
