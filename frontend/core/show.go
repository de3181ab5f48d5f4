package core

import (
	"slices"
	"strconv"
	"strings"
)

// String renders c as the S-expression a Pie programmer would write.
func String(c Core) string {
	sb := &strings.Builder{}
	show(sb, c)
	return sb.String()
}

func show(sb *strings.Builder, c Core) {
	form := func(head string, args ...Core) {
		sb.WriteString("(")
		sb.WriteString(head)
		for _, arg := range args {
			sb.WriteString(" ")
			show(sb, arg)
		}
		sb.WriteString(")")
	}
	binder := func(head, name string, typ, body Core) {
		sb.WriteString("(" + head + " ((" + name + " ")
		show(sb, typ)
		sb.WriteString(")) ")
		show(sb, body)
		sb.WriteString(")")
	}

	switch c := c.(type) {
	case nil:
		sb.WriteString("nil")
	case *The:
		form("the", c.Type, c.Expr)
	case *Var:
		sb.WriteString(c.Name)
	case *TODO:
		sb.WriteString("TODO")
	case *App:
		rator, rands := spine(c)
		form(String(rator), rands...)
	case *U:
		sb.WriteString("U")
	case *Nat:
		sb.WriteString("Nat")
	case *Zero:
		sb.WriteString("zero")
	case *Add1:
		form("add1", c.N)
	case *NatLit:
		sb.WriteString(strconv.FormatUint(c.N, 10))
	case *WhichNat:
		form("which-Nat", c.Target, c.Base, c.Step)
	case *IterNat:
		form("iter-Nat", c.Target, c.Base, c.Step)
	case *RecNat:
		form("rec-Nat", c.Target, c.Base, c.Step)
	case *IndNat:
		form("ind-Nat", c.Target, c.Motive, c.Base, c.Step)
	case *Pi:
		binder("Π", c.Name, c.Arg, c.Body)
	case *Lambda:
		sb.WriteString("(λ (" + c.Name + ") ")
		show(sb, c.Body)
		sb.WriteString(")")
	case *Sigma:
		binder("Σ", c.Name, c.Car, c.Cdr)
	case *Cons:
		form("cons", c.Car, c.Cdr)
	case *Car:
		form("car", c.Pair)
	case *Cdr:
		form("cdr", c.Pair)
	case *Atom:
		sb.WriteString("Atom")
	case *Quote:
		sb.WriteString("'" + c.Symbol)
	case *Trivial:
		sb.WriteString("Trivial")
	case *Sole:
		sb.WriteString("sole")
	case *List:
		form("List", c.Elem)
	case *Nil:
		sb.WriteString("nil")
	case *ListCons:
		form("::", c.Head, c.Tail)
	case *RecList:
		form("rec-List", c.Target, c.Base, c.Step)
	case *IndList:
		form("ind-List", c.Target, c.Motive, c.Base, c.Step)
	case *Absurd:
		sb.WriteString("Absurd")
	case *IndAbsurd:
		form("ind-Absurd", c.Target, c.Motive)
	case *Equal:
		form("=", c.Type, c.From, c.To)
	case *Same:
		form("same", c.Expr)
	case *Replace:
		form("replace", c.Target, c.Motive, c.Base)
	case *Trans:
		form("trans", c.Left, c.Right)
	case *Cong:
		form("cong", c.Target, c.Codomain, c.Fun)
	case *Symm:
		form("symm", c.Target)
	case *IndEqual:
		form("ind-=", c.Target, c.Motive, c.Base)
	case *Vec:
		form("Vec", c.Elem, c.Len)
	case *VecNil:
		sb.WriteString("vecnil")
	case *VecCons:
		form("vec::", c.Head, c.Tail)
	case *Head:
		form("head", c.Vec)
	case *Tail:
		form("tail", c.Vec)
	case *IndVec:
		form("ind-Vec", c.Len, c.Target, c.Motive, c.Base, c.Step)
	case *Either:
		form("Either", c.Left, c.Right)
	case *Left:
		form("left", c.Expr)
	case *Right:
		form("right", c.Expr)
	case *IndEither:
		form("ind-Either", c.Target, c.Motive, c.Left, c.Right)
	default:
		sb.WriteString("#<unknown>")
	}
}

// spine flattens ((f a) b) into f and [a b].
func spine(app *App) (Core, []Core) {
	var rands []Core
	var c Core = app
	for {
		a, ok := c.(*App)
		if !ok {
			break
		}
		rands = append(rands, a.Rand)
		c = a.Rator
	}
	slices.Reverse(rands)
	return c, rands
}
