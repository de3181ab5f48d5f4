package check

import "github.com/benbjohnson/immutable"

// Renaming maps the names bound in source syntax to the fresh names the
// checker chose for them in Core. Names without an entry are unchanged.
type Renaming struct {
	m *immutable.Map[string, string]
	// every name ever chosen as a target, including shadowed ones
	targets *immutable.Map[string, struct{}]
}

// NoRenaming is the renaming used at the top level of a declaration.
func NoRenaming() Renaming {
	return Renaming{
		m:       immutable.NewMap[string, string](nil),
		targets: immutable.NewMap[string, struct{}](nil),
	}
}

func (r Renaming) Rename(name string) string {
	if r.m == nil {
		return name
	}
	if to, ok := r.m.Get(name); ok {
		return to
	}
	return name
}

// Captures reports whether name has no entry in r but was chosen as the
// Core name of some binder, in which case leaving it unchanged would make
// it refer to that binder.
func (r Renaming) Captures(name string) bool {
	if r.m == nil || r.targets == nil {
		return false
	}
	if _, ok := r.m.Get(name); ok {
		return false
	}
	_, ok := r.targets.Get(name)
	return ok
}

// Extend returns r with from renamed to to, shadowing any previous entry.
func (r Renaming) Extend(from, to string) Renaming {
	m, targets := r.m, r.targets
	if m == nil {
		m = immutable.NewMap[string, string](nil)
	}
	if targets == nil {
		targets = immutable.NewMap[string, struct{}](nil)
	}
	return Renaming{m: m.Set(from, to), targets: targets.Set(to, struct{}{})}
}

func (r Renaming) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Len()
}
