package nbe

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

type envEntry struct {
	name  string
	value Value
}

// Env is the run-time environment: names bound to values, most recent
// binding first. Extending an Env never modifies it.
type Env struct {
	entries *immutable.List[envEntry]
}

func (e Env) list() *immutable.List[envEntry] {
	if e.entries == nil {
		return immutable.NewList[envEntry]()
	}
	return e.entries
}

// Extend returns e with name bound to v in front.
func (e Env) Extend(name string, v Value) Env {
	return Env{entries: e.list().Prepend(envEntry{name: name, value: v})}
}

// Lookup returns the value of the first binding of name.
func (e Env) Lookup(name string) (Value, bool) {
	for entryName, v := range e.All() {
		if entryName == name {
			return v, true
		}
	}
	return nil, false
}

func (e Env) Len() int {
	return e.list().Len()
}

// All yields the bindings of e front to back.
func (e Env) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		itr := e.list().Iterator()
		for !itr.Done() {
			_, entry := itr.Next()
			if !yield(entry.name, entry.value) {
				return
			}
		}
	}
}
