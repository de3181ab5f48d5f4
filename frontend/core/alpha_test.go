package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lam(x string, body Core) Core { return &Lambda{Name: x, Body: body} }
func v(x string) Core             { return &Var{Name: x} }

func TestAlphaEquiv(t *testing.T) {
	testCases := []struct {
		name     string
		left     Core
		right    Core
		expected bool
	}{
		{
			name:     "identity functions with different binders",
			left:     lam("x", v("x")),
			right:    lam("y", v("y")),
			expected: true,
		},
		{
			name:     "free variables compare by name",
			left:     lam("x", v("z")),
			right:    lam("y", v("z")),
			expected: true,
		},
		{
			name:     "bound and free variables differ",
			left:     lam("x", v("x")),
			right:    lam("y", v("x")),
			expected: false,
		},
		{
			name:     "binder depth matters",
			left:     lam("x", lam("y", v("x"))),
			right:    lam("a", lam("b", v("b"))),
			expected: false,
		},
		{
			name:     "shadowing refers to the innermost binder",
			left:     lam("x", lam("x", v("x"))),
			right:    lam("a", lam("b", v("b"))),
			expected: true,
		},
		{
			name: "Π types",
			left: &Pi{Name: "n", Arg: &Nat{}, Body: &Vec{Elem: &Atom{}, Len: v("n")}},
			right: &Pi{Name: "m", Arg: &Nat{}, Body: &Vec{Elem: &Atom{}, Len: v("m")}},
			expected: true,
		},
		{
			name:     "Π and Σ are different",
			left:     &Pi{Name: "n", Arg: &Nat{}, Body: &Nat{}},
			right:    &Sigma{Name: "n", Car: &Nat{}, Cdr: &Nat{}},
			expected: false,
		},
		{
			name:     "quotes compare by symbol",
			left:     &Quote{Symbol: "ratatouille"},
			right:    &Quote{Symbol: "ratatouille"},
			expected: true,
		},
		{
			name:     "different quotes",
			left:     &Quote{Symbol: "a"},
			right:    &Quote{Symbol: "b"},
			expected: false,
		},
		{
			name:     "any two proofs of Absurd are the same",
			left:     &The{Type: &Absurd{}, Expr: v("x")},
			right:    &The{Type: &Absurd{}, Expr: &App{Rator: v("f"), Rand: &Zero{}}},
			expected: true,
		},
		{
			name:     "other annotations are compared",
			left:     &The{Type: &Nat{}, Expr: v("x")},
			right:    &The{Type: &Nat{}, Expr: v("y")},
			expected: false,
		},
		{
			name:     "eliminators compare pointwise",
			left:     &IndNat{Target: v("n"), Motive: lam("k", &Nat{}), Base: &Zero{}, Step: lam("a", lam("b", v("b")))},
			right:    &IndNat{Target: v("n"), Motive: lam("j", &Nat{}), Base: &Zero{}, Step: lam("c", lam("d", v("d")))},
			expected: true,
		},
		{
			name:     "eliminators with different arguments",
			left:     &Replace{Target: v("p"), Motive: lam("k", &Nat{}), Base: &Zero{}},
			right:    &Replace{Target: v("q"), Motive: lam("k", &Nat{}), Base: &Zero{}},
			expected: false,
		},
		{
			name:     "different eliminators of the same arity",
			left:     &Car{Pair: v("p")},
			right:    &Cdr{Pair: v("p")},
			expected: false,
		},
		{
			name:     "numerals",
			left:     &NatLit{N: 3},
			right:    &NatLit{N: 3},
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AlphaEquiv(tc.left, tc.right))
			assert.Equal(t, tc.expected, AlphaEquiv(tc.right, tc.left), "α-equivalence is symmetric")
		})
	}
}

func TestAlphaEquivReflexive(t *testing.T) {
	terms := []Core{
		&U{},
		lam("x", &App{Rator: v("f"), Rand: v("x")}),
		&IndVec{Len: v("l"), Target: v("es"), Motive: v("m"), Base: v("b"), Step: v("s")},
		&Cong{Target: v("p"), Codomain: &Nat{}, Fun: v("f")},
		&TODO{Type: &Nat{}},
		&Either{Left: &Nat{}, Right: &Atom{}},
	}
	for _, term := range terms {
		assert.True(t, AlphaEquiv(term, term), String(term))
	}
}
