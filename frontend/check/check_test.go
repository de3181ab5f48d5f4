package check

import (
	"errors"
	"strings"
	"testing"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/nbe"
	"github.com/cottand/pie/frontend/perr"
	"github.com/cottand/pie/frontend/src"
	. "github.com/cottand/pie/frontend/src/srctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func natString(n int) string {
	return strings.Repeat("(add1 ", n) + "zero" + strings.Repeat(")", n)
}

// rep synthesizes e and renders (the T v) with both parts normalized.
func rep(t *testing.T, ctx nbe.Ctx, e src.Src) string {
	t.Helper()
	the, err := Synth(ctx, NoRenaming(), e)
	require.NoError(t, err)
	require.True(t, core.IsCore(the), "ill-formed Core %s", core.String(the))
	tv := nbe.ValInCtx(ctx, the.Type)
	normal := &core.The{
		Type: nbe.ReadBackType(ctx, tv),
		Expr: nbe.ReadBack(ctx, tv, nbe.ValInCtx(ctx, the.Expr)),
	}
	require.True(t, core.IsCore(normal), "ill-formed normal form %s", core.String(normal))
	return core.String(normal)
}

func bindFree(t *testing.T, ctx nbe.Ctx, name string, typ src.Src) nbe.Ctx {
	t.Helper()
	c, err := IsType(ctx, NoRenaming(), typ)
	require.NoError(t, err)
	return nbe.BindFree(ctx, name, nbe.ValInCtx(ctx, c))
}

func requireStop(t *testing.T, err error, code perr.ErrCode) *perr.Stop {
	t.Helper()
	require.Error(t, err)
	var stop *perr.Stop
	require.True(t, errors.As(err, &stop), "expected a *perr.Stop, got %T", err)
	assert.Equal(t, code, stop.Code(), stop.Error())
	return stop
}

var plus = The(
	Arrow(Nat(), Nat(), Nat()),
	Lam([]string{"a", "b"}, RecNat(V("a"), V("b"), Lam([]string{"k", "ih"}, Add1(V("ih"))))),
)

func TestSynthNormalForms(t *testing.T) {
	testCases := []struct {
		name     string
		input    src.Src
		expected string
	}{
		{
			name:     "numeral",
			input:    The(Nat(), N(2)),
			expected: "(the Nat " + natString(2) + ")",
		},
		{
			name:     "identity applied to zero",
			input:    App(The(Arrow(Nat(), Nat()), Lam([]string{"n"}, V("n"))), Zero()),
			expected: "(the Nat zero)",
		},
		{
			name:     "addition by rec-Nat",
			input:    App(plus, N(2), N(3)),
			expected: "(the Nat " + natString(5) + ")",
		},
		{
			name:     "which-Nat on zero",
			input:    WhichNat(Zero(), Quote("zero"), Lam([]string{"n"}, Quote("more"))),
			expected: "(the Atom 'zero)",
		},
		{
			name:     "which-Nat on a successor",
			input:    WhichNat(N(3), Quote("zero"), Lam([]string{"n"}, Quote("more"))),
			expected: "(the Atom 'more)",
		},
		{
			name:     "iter-Nat",
			input:    IterNat(N(3), Zero(), Lam([]string{"ih"}, Add1(V("ih")))),
			expected: "(the Nat " + natString(3) + ")",
		},
		{
			name:     "ind-Nat doubles",
			input:    IndNat(N(2), Lam([]string{"k"}, Nat()), Zero(), Lam([]string{"k", "ih"}, Add1(Add1(V("ih"))))),
			expected: "(the Nat " + natString(4) + ")",
		},
		{
			name:     "car of a pair",
			input:    Car(The(Pair(Nat(), Atom()), Cons(N(1), Quote("a")))),
			expected: "(the Nat " + natString(1) + ")",
		},
		{
			name: "cdr of a dependent pair",
			input: Cdr(The(
				Sigma(Vec(Atom(), V("n")), B("n", Nat())),
				Cons(N(1), VecCons(Quote("a"), VecNil())),
			)),
			expected: "(the (Vec Atom " + natString(1) + ") (vec:: 'a vecnil))",
		},
		{
			name:     "sole",
			input:    Sole(),
			expected: "(the Trivial sole)",
		},
		{
			name:     "length by rec-List",
			input:    RecList(ListCons(Quote("a"), ListCons(Quote("b"), Nil())), Zero(), Lam([]string{"e", "es", "n"}, Add1(V("n")))),
			expected: "(the Nat " + natString(2) + ")",
		},
		{
			name:     "length by ind-List",
			input:    IndList(ListCons(N(1), Nil()), Lam([]string{"xs"}, Nat()), Zero(), Lam([]string{"e", "es", "ih"}, Add1(V("ih")))),
			expected: "(the Nat " + natString(1) + ")",
		},
		{
			name:     "replace on same",
			input:    Replace(The(Equal(Nat(), N(1), N(1)), Same(N(1))), Lam([]string{"k"}, Atom()), Quote("a")),
			expected: "(the Atom 'a)",
		},
		{
			name:     "ind-= on same",
			input:    IndEqual(The(Equal(Nat(), Zero(), Zero()), Same(Zero())), Lam([]string{"to", "p"}, Nat()), N(1)),
			expected: "(the Nat " + natString(1) + ")",
		},
		{
			name:     "head",
			input:    Head(The(Vec(Atom(), N(2)), VecCons(Quote("a"), VecCons(Quote("b"), VecNil())))),
			expected: "(the Atom 'a)",
		},
		{
			name:     "tail",
			input:    Tail(The(Vec(Atom(), N(2)), VecCons(Quote("a"), VecCons(Quote("b"), VecNil())))),
			expected: "(the (Vec Atom " + natString(1) + ") (vec:: 'b vecnil))",
		},
		{
			name: "length by ind-Vec",
			input: IndVec(
				N(2),
				The(Vec(Atom(), N(2)), VecCons(Quote("a"), VecCons(Quote("b"), VecNil()))),
				Lam([]string{"k", "es"}, Nat()),
				Zero(),
				Lam([]string{"k", "h", "t", "ih"}, Add1(V("ih"))),
			),
			expected: "(the Nat " + natString(2) + ")",
		},
		{
			name:     "left",
			input:    The(Either(Nat(), Atom()), Left(N(3))),
			expected: "(the (Either Nat Atom) (left " + natString(3) + "))",
		},
		{
			name: "ind-Either",
			input: IndEither(
				The(Either(Nat(), Atom()), Right(Quote("a"))),
				Lam([]string{"x"}, Nat()),
				Lam([]string{"n"}, V("n")),
				Lam([]string{"a"}, N(7)),
			),
			expected: "(the Nat " + natString(7) + ")",
		},
		{
			name:     "a hole stands for itself",
			input:    The(Nat(), Hole()),
			expected: "(the Nat TODO)",
		},
		{
			name:     "types are in U",
			input:    Pi(Vec(Atom(), V("n")), B("n", Nat())),
			expected: "(the U (Π ((n Nat)) (Vec Atom n)))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rep(t, nbe.InitCtx(), tc.input))
		})
	}
}

func TestSynthWithFreeVariables(t *testing.T) {
	ctx := nbe.InitCtx()
	ctx = bindFree(t, ctx, "a", Nat())
	ctx = bindFree(t, ctx, "b", Nat())
	ctx = bindFree(t, ctx, "p", Equal(Nat(), V("a"), V("b")))
	ctx = bindFree(t, ctx, "x", Absurd())
	ctx = bindFree(t, ctx, "l", List(Atom()))
	ctx = bindFree(t, ctx, "ws", Vec(Atom(), N(2)))
	ctx = bindFree(t, ctx, "vs", Vec(Atom(), V("a")))
	ctx = bindFree(t, ctx, "e", Either(Nat(), Atom()))

	countStep := Lam([]string{"h", "t", "ih"}, Add1(V("ih")))
	vecMotive := Lam([]string{"k", "es"}, Nat())
	vecStep := Lam([]string{"k", "h", "t", "ih"}, Add1(V("ih")))

	testCases := []struct {
		name     string
		input    src.Src
		expected string
	}{
		{
			name:     "stuck which-Nat",
			input:    WhichNat(V("a"), Quote("z"), Lam([]string{"k"}, Quote("y"))),
			expected: "(the Atom (which-Nat a (the Atom 'z) (λ (k) 'y)))",
		},
		{
			name:     "stuck iter-Nat",
			input:    IterNat(V("a"), Zero(), Lam([]string{"k"}, Add1(V("k")))),
			expected: "(the Nat (iter-Nat a (the Nat zero) (λ (k) (add1 k))))",
		},
		{
			name:     "stuck rec-List",
			input:    RecList(V("l"), Zero(), countStep),
			expected: "(the Nat (rec-List l (the Nat zero) (λ (h) (λ (t) (λ (ih) (add1 ih))))))",
		},
		{
			name:     "stuck ind-List",
			input:    IndList(V("l"), Lam([]string{"es"}, Nat()), Zero(), countStep),
			expected: "(the Nat (ind-List l (λ (es) Nat) zero (λ (h) (λ (t) (λ (ih) (add1 ih))))))",
		},
		{
			name:     "stuck replace",
			input:    Replace(V("p"), Lam([]string{"k"}, Atom()), Quote("z")),
			expected: "(the Atom (replace p (λ (k) Atom) 'z))",
		},
		{
			name:     "stuck ind-=",
			input:    IndEqual(V("p"), Lam([]string{"to", "eq"}, Atom()), Quote("z")),
			expected: "(the Atom (ind-= p (λ (to) (λ (eq) Atom)) 'z))",
		},
		{
			name:     "stuck head",
			input:    Head(V("ws")),
			expected: "(the Atom (head ws))",
		},
		{
			name:     "stuck tail",
			input:    Tail(V("ws")),
			expected: "(the (Vec Atom (add1 zero)) (tail ws))",
		},
		{
			name:  "ind-Vec stuck on its target",
			input: IndVec(N(2), V("ws"), vecMotive, Zero(), vecStep),
			expected: "(the Nat (ind-Vec (add1 (add1 zero)) ws (λ (k) (λ (es) Nat)) zero " +
				"(λ (k) (λ (h) (λ (t) (λ (ih) (add1 ih)))))))",
		},
		{
			name:  "ind-Vec stuck on its length and target",
			input: IndVec(V("a"), V("vs"), vecMotive, Zero(), vecStep),
			expected: "(the Nat (ind-Vec a vs (λ (k) (λ (es) Nat)) zero " +
				"(λ (k) (λ (h) (λ (t) (λ (ih) (add1 ih)))))))",
		},
		{
			name:     "stuck ind-Either",
			input:    IndEither(V("e"), Lam([]string{"s"}, Nat()), Lam([]string{"n"}, Add1(V("n"))), Lam([]string{"s"}, Zero())),
			expected: "(the Nat (ind-Either e (λ (s) Nat) (λ (n) (add1 n)) (λ (s) zero)))",
		},
		{
			name:     "symm",
			input:    Symm(V("p")),
			expected: "(the (= Nat b a) (symm p))",
		},
		{
			name:     "trans with same",
			input:    Trans(V("p"), The(Equal(Nat(), V("b"), V("b")), Same(V("b")))),
			expected: "(the (= Nat a b) (trans p (same b)))",
		},
		{
			name:     "cong",
			input:    Cong(V("p"), The(Arrow(Nat(), Nat()), Lam([]string{"k"}, Add1(V("k"))))),
			expected: "(the (= Nat (add1 a) (add1 b)) (cong p Nat (λ (k) (add1 k))))",
		},
		{
			name:     "ind-Absurd",
			input:    IndAbsurd(V("x"), Nat()),
			expected: "(the Nat (ind-Absurd (the Absurd x) Nat))",
		},
		{
			name:     "stuck addition",
			input:    App(plus, V("a"), Zero()),
			expected: "(the Nat (rec-Nat a (the Nat zero) (λ (k) (λ (ih) (add1 ih)))))",
		},
		{
			name:     "addition computes on a known first argument",
			input:    App(plus, N(1), V("b")),
			expected: "(the Nat (add1 b))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rep(t, ctx, tc.input))
		})
	}
}

func TestCheckFailures(t *testing.T) {
	ctx := nbe.InitCtx()
	ctx = bindFree(t, ctx, "a", Nat())
	ctx = bindFree(t, ctx, "p", Equal(Nat(), V("a"), Zero()))

	testCases := []struct {
		name     string
		input    src.Src
		code     perr.ErrCode
		contains []string
	}{
		{
			name:     "Atom is not Nat",
			input:    The(Atom(), N(5)),
			code:     perr.TypeMismatch,
			contains: []string{"Expected Atom but given Nat"},
		},
		{
			name:  "unknown variable",
			input: V("y"),
			code:  perr.ScopeError,
		},
		{
			name:  "bare λ",
			input: Lam([]string{"x"}, V("x")),
			code:  perr.CannotSynth,
		},
		{
			name:  "U has no type",
			input: U(),
			code:  perr.CannotSynth,
		},
		{
			name:  "U is not in U",
			input: Arrow(U(), U()),
			code:  perr.CannotSynth,
		},
		{
			name:     "λ is not a Nat",
			input:    The(Nat(), Lam([]string{"x"}, V("x"))),
			code:     perr.WrongShape,
			contains: []string{"function type", "Nat"},
		},
		{
			name:  "λ binding a keyword",
			input: The(Arrow(Nat(), Nat()), Lam([]string{"zero"}, Zero())),
			code:  perr.BadName,
		},
		{
			name:  "atoms are letters",
			input: Quote("hello1"),
			code:  perr.BadName,
		},
		{
			name: "a variable empty vector is not vecnil",
			input: The(
				Pi(Equal(Vec(Nat(), Zero()), V("xs"), VecNil()), B("xs", Vec(Nat(), Zero()))),
				Lam([]string{"xs"}, Same(V("xs"))),
			),
			code: perr.NotSame,
		},
		{
			name: "cong with a dependent function",
			input: Cong(V("p"), The(
				Pi(Equal(Nat(), V("n"), V("n")), B("n", Nat())),
				Lam([]string{"n"}, Same(V("n"))),
			)),
			code:     perr.WrongShape,
			contains: []string{"non-dependent"},
		},
		{
			name:  "vecnil has length zero",
			input: The(Vec(Atom(), N(1)), VecNil()),
			code:  perr.WrongShape,
		},
		{
			name:  "head of an empty vector",
			input: Head(The(Vec(Atom(), Zero()), VecNil())),
			code:  perr.WrongShape,
		},
		{
			name:     "same needs equal sides",
			input:    The(Equal(Nat(), N(1), N(2)), Same(N(1))),
			code:     perr.NotSame,
			contains: []string{natString(1), natString(2)},
		},
		{
			name:  "trans needs matching ends",
			input: Trans(V("p"), V("p")),
			code:  perr.NotSame,
		},
		{
			name:  "numbers are not functions",
			input: App(The(Nat(), N(1)), N(1)),
			code:  perr.WrongShape,
		},
		{
			name:  "a type is not an expression of type Nat",
			input: Add1(Nat()),
			code:  perr.TypeMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Synth(ctx, NoRenaming(), tc.input)
			stop := requireStop(t, err, tc.code)
			for _, s := range tc.contains {
				assert.Contains(t, stop.Text(), s)
			}
		})
	}
}

func TestIsType(t *testing.T) {
	ctx := bindFree(t, nbe.InitCtx(), "x", Nat())

	testCases := []struct {
		name     string
		input    src.Src
		expected string
	}{
		{name: "U", input: U(), expected: "U"},
		{name: "arrow of universes", input: Arrow(U(), U()), expected: "(Π ((x₁ U)) U)"},
		{
			name:     "arrow binder avoids the free x",
			input:    Arrow(Nat(), Vec(Atom(), V("x"))),
			expected: "(Π ((x₁ Nat)) (Vec Atom x))",
		},
		{name: "Pair", input: Pair(Nat(), Atom()), expected: "(Σ ((x₁ Nat)) Atom)"},
		{
			name:     "Π binders are renamed apart",
			input:    Pi(Equal(Atom(), V("x"), V("x")), B("x", Nat()), B("x", Atom())),
			expected: "(Π ((x₁ Nat)) (Π ((x₂ Atom)) (= Atom x₂ x₂)))",
		},
		{name: "Either", input: Either(Nat(), Trivial()), expected: "(Either Nat Trivial)"},
		{name: "List", input: List(Absurd()), expected: "(List Absurd)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := IsType(ctx, NoRenaming(), tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, core.String(c))
			assert.True(t, core.IsCore(c))
		})
	}

	_, err := IsType(ctx, NoRenaming(), Zero())
	requireStop(t, err, perr.TypeMismatch)
}

func TestCheckRenamesBinders(t *testing.T) {
	ctx := bindFree(t, nbe.InitCtx(), "x", Nat())
	r := NoRenaming()

	atomToAtom := &nbe.Pi{Name: "y", Arg: &nbe.Atom{}, Result: &nbe.HOClosure{Fun: func(nbe.Value) nbe.Value { return &nbe.Atom{} }}}
	c, err := Check(ctx, r, Lam([]string{"x"}, V("x")), atomToAtom)
	require.NoError(t, err)
	assert.Equal(t, "(λ (x₁) x₁)", core.String(c))

	nested := nbe.Arrow("a", &nbe.Nat{}, nbe.Arrow("b", &nbe.Atom{}, &nbe.Atom{}))
	c, err = Check(nbe.InitCtx(), r, Lam([]string{"x"}, Lam([]string{"x"}, V("x"))), nested)
	require.NoError(t, err)
	assert.Equal(t, "(λ (x) (λ (x₁) x₁))", core.String(c))

	c, err = Check(nbe.InitCtx(), r, Lam([]string{"x", "y"}, V("x")), nested)
	require.Error(t, err, "x is a Nat, not an Atom")
	assert.Nil(t, c)
}

func TestUnboundNameIsNotCapturedByFreshBinder(t *testing.T) {
	ctx := bindFree(t, nbe.InitCtx(), "x", Nat())
	natToNat := nbe.Arrow("n", &nbe.Nat{}, &nbe.Nat{})

	_, err := Check(ctx, NoRenaming(), Lam([]string{"x"}, V("x₁")), natToNat)
	requireStop(t, err, perr.ScopeError)

	_, err = Synth(ctx, NoRenaming(), The(Arrow(Nat(), Nat(), Nat()), Lam([]string{"x", "y"}, V("x₁"))))
	requireStop(t, err, perr.ScopeError)

	_, err = IsType(ctx, NoRenaming(), Pi(V("x₁"), B("x", U())))
	requireStop(t, err, perr.ScopeError)

	c, err := Check(ctx, NoRenaming(), Lam([]string{"x"}, Lam([]string{"x₁"}, V("x₁"))), nbe.Arrow("n", &nbe.Nat{}, natToNat))
	require.NoError(t, err, "a source binder named like a fresh name is still in scope")
	assert.Equal(t, "(λ (x₁) (λ (x₂) x₂))", core.String(c))
}

func TestConvert(t *testing.T) {
	ctx := bindFree(t, nbe.InitCtx(), "f", Arrow(Nat(), Nat()))
	f := &nbe.Neu{Type: nbe.Arrow("x", &nbe.Nat{}, &nbe.Nat{}), Neutral: &nbe.NVar{Name: "f"}}
	etaF := nbe.ValInCtx(ctx, &core.Lambda{Name: "y", Body: &core.App{Rator: &core.Var{Name: "f"}, Rand: &core.Var{Name: "y"}}})

	assert.NoError(t, Convert(ctx, src.Range{}, f.Type, f, etaF))

	two := nbe.ValInCtx(ctx, &core.NatLit{N: 2})
	three := nbe.ValInCtx(ctx, &core.NatLit{N: 3})
	requireStop(t, Convert(ctx, src.Range{}, &nbe.Nat{}, two, three), perr.NotSame)

	assert.NoError(t, SameType(ctx, src.Range{}, &nbe.Nat{}, &nbe.Nat{}))
	requireStop(t, SameType(ctx, src.Range{}, &nbe.Nat{}, &nbe.Atom{}), perr.TypeMismatch)
}

func TestRenaming(t *testing.T) {
	r := NoRenaming()
	assert.Equal(t, "x", r.Rename("x"))

	r1 := r.Extend("x", "x₁")
	r2 := r1.Extend("x", "x₂")
	assert.Equal(t, "x₁", r1.Rename("x"))
	assert.Equal(t, "x₂", r2.Rename("x"))
	assert.Equal(t, 0, r.Len())

	assert.True(t, r2.Captures("x₁"), "a shadowed target is still taken")
	assert.False(t, r2.Captures("x"))
	assert.False(t, r2.Captures("y"))

	var zero Renaming
	assert.Equal(t, "y", zero.Extend("x", "z").Rename("y"))
}
