package core

import (
	"reflect"
	"unicode"
)

// IsCore reports whether c is a legal Core tree: every node is one of the
// known constructors, no child is missing, binders bind variable names and
// atoms are made of letters and hyphens.
//
// It only classifies and never panics, so it can back both runtime
// assertions and tests.
func IsCore(c Core) bool {
	if c == nil || reflect.ValueOf(c).IsNil() {
		return false
	}
	switch c := c.(type) {
	case *Var:
		return IsVarName(c.Name)
	case *Quote:
		return IsAtomSymbol(c.Symbol)
	case *U, *Nat, *Zero, *NatLit, *Atom, *Trivial, *Sole, *Nil, *Absurd, *VecNil:
		return true
	case *Pi:
		if !IsVarName(c.Name) {
			return false
		}
	case *Lambda:
		if !IsVarName(c.Name) {
			return false
		}
	case *Sigma:
		if !IsVarName(c.Name) {
			return false
		}
	case *The, *TODO, *App, *Add1,
		*WhichNat, *IterNat, *RecNat, *IndNat,
		*Cons, *Car, *Cdr,
		*List, *ListCons, *RecList, *IndList,
		*IndAbsurd,
		*Equal, *Same, *Replace, *Trans, *Cong, *Symm, *IndEqual,
		*Vec, *VecCons, *Head, *Tail, *IndVec,
		*Either, *Left, *Right, *IndEither:
	default:
		return false
	}
	for _, child := range Children(c) {
		if !IsCore(child) {
			return false
		}
	}
	return true
}

// IsAtomSymbol reports whether s can follow a quote: a non-empty run of
// letters and hyphens.
func IsAtomSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '-' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
