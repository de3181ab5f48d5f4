// Package srctest builds Src trees for tests. Every node it builds has an
// empty Range.
package srctest

import "github.com/cottand/pie/frontend/src"

func V(name string) src.Src { return &src.Var{Name: name} }

func The(typ, expr src.Src) src.Src { return &src.The{Type: typ, Expr: expr} }

func App(rator src.Src, rands ...src.Src) src.Src { return &src.App{Rator: rator, Rands: rands} }

func Hole() src.Src { return &src.Hole{} }

func U() src.Src       { return &src.U{} }
func Nat() src.Src     { return &src.Nat{} }
func Zero() src.Src    { return &src.Zero{} }
func Atom() src.Src    { return &src.Atom{} }
func Trivial() src.Src { return &src.Trivial{} }
func Sole() src.Src    { return &src.Sole{} }
func Absurd() src.Src  { return &src.Absurd{} }
func Nil() src.Src     { return &src.Nil{} }
func VecNil() src.Src  { return &src.VecNil{} }

func Add1(n src.Src) src.Src  { return &src.Add1{N: n} }
func N(n uint64) src.Src      { return &src.NatLit{N: n} }
func Quote(s string) src.Src  { return &src.Quote{Symbol: s} }
func List(e src.Src) src.Src  { return &src.List{Elem: e} }
func Same(e src.Src) src.Src  { return &src.Same{Expr: e} }
func Symm(p src.Src) src.Src  { return &src.Symm{Target: p} }
func Car(p src.Src) src.Src   { return &src.Car{Pair: p} }
func Cdr(p src.Src) src.Src   { return &src.Cdr{Pair: p} }
func Head(v src.Src) src.Src  { return &src.Head{Vec: v} }
func Tail(v src.Src) src.Src  { return &src.Tail{Vec: v} }
func Left(e src.Src) src.Src  { return &src.Left{Expr: e} }
func Right(e src.Src) src.Src { return &src.Right{Expr: e} }

func Arrow(args ...src.Src) src.Src { return &src.Arrow{Args: args} }

func Lam(params []string, body src.Src) src.Src {
	sites := make([]src.BindingSite, len(params))
	for i, p := range params {
		sites[i] = src.BindingSite{Name: p}
	}
	return &src.Lambda{Params: sites, Body: body}
}

// B is one (name type) binder of a Π or Σ.
func B(name string, typ src.Src) src.TypedBinder {
	return src.TypedBinder{Site: src.BindingSite{Name: name}, Type: typ}
}

func Pi(body src.Src, binders ...src.TypedBinder) src.Src {
	return &src.Pi{Binders: binders, Body: body}
}

func Sigma(body src.Src, binders ...src.TypedBinder) src.Src {
	return &src.Sigma{Binders: binders, Body: body}
}

func Pair(car, cdr src.Src) src.Src     { return &src.Pair{Car: car, Cdr: cdr} }
func Cons(car, cdr src.Src) src.Src     { return &src.Cons{Car: car, Cdr: cdr} }
func ListCons(h, t src.Src) src.Src     { return &src.ListCons{Head: h, Tail: t} }
func VecCons(h, t src.Src) src.Src      { return &src.VecCons{Head: h, Tail: t} }
func Vec(e, l src.Src) src.Src          { return &src.Vec{Elem: e, Len: l} }
func Either(l, r src.Src) src.Src       { return &src.Either{Left: l, Right: r} }
func Equal(t, from, to src.Src) src.Src { return &src.Equal{Type: t, From: from, To: to} }
func Trans(l, r src.Src) src.Src        { return &src.Trans{Left: l, Right: r} }
func Cong(p, f src.Src) src.Src         { return &src.Cong{Target: p, Fun: f} }

func WhichNat(t, b, s src.Src) src.Src { return &src.WhichNat{Target: t, Base: b, Step: s} }
func IterNat(t, b, s src.Src) src.Src  { return &src.IterNat{Target: t, Base: b, Step: s} }
func RecNat(t, b, s src.Src) src.Src   { return &src.RecNat{Target: t, Base: b, Step: s} }
func RecList(t, b, s src.Src) src.Src  { return &src.RecList{Target: t, Base: b, Step: s} }

func IndNat(t, m, b, s src.Src) src.Src  { return &src.IndNat{Target: t, Motive: m, Base: b, Step: s} }
func IndList(t, m, b, s src.Src) src.Src { return &src.IndList{Target: t, Motive: m, Base: b, Step: s} }

func IndAbsurd(t, m src.Src) src.Src      { return &src.IndAbsurd{Target: t, Motive: m} }
func Replace(t, m, b src.Src) src.Src     { return &src.Replace{Target: t, Motive: m, Base: b} }
func IndEqual(t, m, b src.Src) src.Src    { return &src.IndEqual{Target: t, Motive: m, Base: b} }
func IndEither(t, m, l, r src.Src) src.Src { return &src.IndEither{Target: t, Motive: m, Left: l, Right: r} }

func IndVec(l, t, m, b, s src.Src) src.Src {
	return &src.IndVec{Len: l, Target: t, Motive: m, Base: b, Step: s}
}
