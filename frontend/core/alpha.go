package core

// bindings maps the bound names of one side of a comparison to the level
// at which they were introduced. The most recent binding comes first, so
// shadowed names resolve to the innermost binder.
type bindings struct {
	name  string
	level int
	next  *bindings
}

func (b *bindings) lookup(name string) (int, bool) {
	for ; b != nil; b = b.next {
		if b.name == name {
			return b.level, true
		}
	}
	return 0, false
}

type alphaCtx struct {
	level       int
	left, right *bindings
}

func (a alphaCtx) under(x, y string) alphaCtx {
	return alphaCtx{
		level: a.level + 1,
		left:  &bindings{name: x, level: a.level, next: a.left},
		right: &bindings{name: y, level: a.level, next: a.right},
	}
}

// AlphaEquiv decides whether two Core terms are the same up to a consistent
// renaming of bound variables.
//
// Any two neutral inhabitants of Absurd, written (the Absurd e), are equal.
func AlphaEquiv(e1, e2 Core) bool {
	return alphaCtx{}.equiv(e1, e2)
}

func (a alphaCtx) all(es1, es2 []Core) bool {
	if len(es1) != len(es2) {
		return false
	}
	for i := range es1 {
		if !a.equiv(es1[i], es2[i]) {
			return false
		}
	}
	return true
}

func (a alphaCtx) equiv(e1, e2 Core) bool {
	switch e1 := e1.(type) {
	case *Var:
		e2, ok := e2.(*Var)
		if !ok {
			return false
		}
		l1, bound1 := a.left.lookup(e1.Name)
		l2, bound2 := a.right.lookup(e2.Name)
		switch {
		case bound1 && bound2:
			return l1 == l2
		case !bound1 && !bound2:
			return e1.Name == e2.Name
		default:
			return false
		}
	case *Pi:
		e2, ok := e2.(*Pi)
		return ok && a.equiv(e1.Arg, e2.Arg) && a.under(e1.Name, e2.Name).equiv(e1.Body, e2.Body)
	case *Lambda:
		e2, ok := e2.(*Lambda)
		return ok && a.under(e1.Name, e2.Name).equiv(e1.Body, e2.Body)
	case *Sigma:
		e2, ok := e2.(*Sigma)
		return ok && a.equiv(e1.Car, e2.Car) && a.under(e1.Name, e2.Name).equiv(e1.Cdr, e2.Cdr)
	case *The:
		e2, ok := e2.(*The)
		if !ok {
			return false
		}
		if isAbsurd(e1.Type) && isAbsurd(e2.Type) {
			return true
		}
		return a.equiv(e1.Type, e2.Type) && a.equiv(e1.Expr, e2.Expr)
	case *TODO:
		e2, ok := e2.(*TODO)
		return ok && e1.Loc == e2.Loc && a.equiv(e1.Type, e2.Type)
	case *Quote:
		e2, ok := e2.(*Quote)
		return ok && e1.Symbol == e2.Symbol
	case *NatLit:
		e2, ok := e2.(*NatLit)
		return ok && e1.N == e2.N

	case *U:
		_, ok := e2.(*U)
		return ok
	case *Nat:
		_, ok := e2.(*Nat)
		return ok
	case *Zero:
		_, ok := e2.(*Zero)
		return ok
	case *Atom:
		_, ok := e2.(*Atom)
		return ok
	case *Trivial:
		_, ok := e2.(*Trivial)
		return ok
	case *Sole:
		_, ok := e2.(*Sole)
		return ok
	case *Nil:
		_, ok := e2.(*Nil)
		return ok
	case *Absurd:
		_, ok := e2.(*Absurd)
		return ok
	case *VecNil:
		_, ok := e2.(*VecNil)
		return ok

	case *App:
		e2, ok := e2.(*App)
		return ok && a.equiv(e1.Rator, e2.Rator) && a.equiv(e1.Rand, e2.Rand)
	case *Add1:
		e2, ok := e2.(*Add1)
		return ok && a.equiv(e1.N, e2.N)
	case *WhichNat:
		e2, ok := e2.(*WhichNat)
		return ok && a.all(Children(e1), Children(e2))
	case *IterNat:
		e2, ok := e2.(*IterNat)
		return ok && a.all(Children(e1), Children(e2))
	case *RecNat:
		e2, ok := e2.(*RecNat)
		return ok && a.all(Children(e1), Children(e2))
	case *IndNat:
		e2, ok := e2.(*IndNat)
		return ok && a.all(Children(e1), Children(e2))
	case *Cons:
		e2, ok := e2.(*Cons)
		return ok && a.equiv(e1.Car, e2.Car) && a.equiv(e1.Cdr, e2.Cdr)
	case *Car:
		e2, ok := e2.(*Car)
		return ok && a.equiv(e1.Pair, e2.Pair)
	case *Cdr:
		e2, ok := e2.(*Cdr)
		return ok && a.equiv(e1.Pair, e2.Pair)
	case *List:
		e2, ok := e2.(*List)
		return ok && a.equiv(e1.Elem, e2.Elem)
	case *ListCons:
		e2, ok := e2.(*ListCons)
		return ok && a.equiv(e1.Head, e2.Head) && a.equiv(e1.Tail, e2.Tail)
	case *RecList:
		e2, ok := e2.(*RecList)
		return ok && a.all(Children(e1), Children(e2))
	case *IndList:
		e2, ok := e2.(*IndList)
		return ok && a.all(Children(e1), Children(e2))
	case *IndAbsurd:
		e2, ok := e2.(*IndAbsurd)
		return ok && a.equiv(e1.Target, e2.Target) && a.equiv(e1.Motive, e2.Motive)
	case *Equal:
		e2, ok := e2.(*Equal)
		return ok && a.all(Children(e1), Children(e2))
	case *Same:
		e2, ok := e2.(*Same)
		return ok && a.equiv(e1.Expr, e2.Expr)
	case *Replace:
		e2, ok := e2.(*Replace)
		return ok && a.all(Children(e1), Children(e2))
	case *Trans:
		e2, ok := e2.(*Trans)
		return ok && a.equiv(e1.Left, e2.Left) && a.equiv(e1.Right, e2.Right)
	case *Cong:
		e2, ok := e2.(*Cong)
		return ok && a.all(Children(e1), Children(e2))
	case *Symm:
		e2, ok := e2.(*Symm)
		return ok && a.equiv(e1.Target, e2.Target)
	case *IndEqual:
		e2, ok := e2.(*IndEqual)
		return ok && a.all(Children(e1), Children(e2))
	case *Vec:
		e2, ok := e2.(*Vec)
		return ok && a.equiv(e1.Elem, e2.Elem) && a.equiv(e1.Len, e2.Len)
	case *VecCons:
		e2, ok := e2.(*VecCons)
		return ok && a.equiv(e1.Head, e2.Head) && a.equiv(e1.Tail, e2.Tail)
	case *Head:
		e2, ok := e2.(*Head)
		return ok && a.equiv(e1.Vec, e2.Vec)
	case *Tail:
		e2, ok := e2.(*Tail)
		return ok && a.equiv(e1.Vec, e2.Vec)
	case *IndVec:
		e2, ok := e2.(*IndVec)
		return ok && a.all(Children(e1), Children(e2))
	case *Either:
		e2, ok := e2.(*Either)
		return ok && a.equiv(e1.Left, e2.Left) && a.equiv(e1.Right, e2.Right)
	case *Left:
		e2, ok := e2.(*Left)
		return ok && a.equiv(e1.Expr, e2.Expr)
	case *Right:
		e2, ok := e2.(*Right)
		return ok && a.equiv(e1.Expr, e2.Expr)
	case *IndEither:
		e2, ok := e2.(*IndEither)
		return ok && a.all(Children(e1), Children(e2))
	default:
		return false
	}
}

func isAbsurd(c Core) bool {
	_, ok := c.(*Absurd)
	return ok
}
