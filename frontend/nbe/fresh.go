package nbe

import (
	"unicode/utf8"

	"github.com/cottand/pie/frontend/core"
	"github.com/hashicorp/go-set/v3"
)

const subscriptZero = '₀'

// Fresh returns hint if it is unused in ctx, and otherwise hint with the
// smallest larger subscript that is unused, such as x₁ for x.
func Fresh(ctx Ctx, hint string) string {
	return freshAvoiding(ctx.Names(), hint)
}

// FreshBinder is like Fresh but also avoids every name occurring in expr,
// so that the result can bind a variable around expr without capturing
// anything inside it.
func FreshBinder(ctx Ctx, expr core.Core, hint string) string {
	used := ctx.Names()
	used.InsertSet(core.Names(expr))
	return freshAvoiding(used, hint)
}

func freshAvoiding(used *set.Set[string], hint string) string {
	if !used.Contains(hint) {
		return hint
	}
	base, n := splitSubscript(hint)
	for {
		n++
		candidate := base + subscript(n)
		if !used.Contains(candidate) {
			return candidate
		}
	}
}

// maxSubscriptDigits bounds the subscripts splitSubscript reads, so the
// counter always fits in an int.
const maxSubscriptDigits = 9

// splitSubscript splits a name such as x₁₂ into x and 12. A name with a
// longer subscript than maxSubscriptDigits is all base.
func splitSubscript(name string) (string, int) {
	end, digits := len(name), 0
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(name[:end])
		if r < subscriptZero || r > subscriptZero+9 {
			break
		}
		end -= size
		digits++
	}
	if digits > maxSubscriptDigits {
		return name, 0
	}
	n := 0
	for _, r := range name[end:] {
		n = n*10 + int(r-subscriptZero)
	}
	return name[:end], n
}

func subscript(n int) string {
	if n == 0 {
		return ""
	}
	var digits []rune
	for ; n > 0; n /= 10 {
		digits = append([]rune{subscriptZero + rune(n%10)}, digits...)
	}
	return string(digits)
}
