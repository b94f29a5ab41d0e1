package funcs

import (
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/gridsheet/internal/value"
)

// Func is the uniform signature of a built-in. Operands are consumed by value
// and a fresh result is returned.
type Func func(a, b value.Value) value.Value

// Builtin describes one entry of the function table.
type Builtin struct {
	Name  string
	Unary bool
	Fn    Func
}

// Registry maps upper-case function names to their implementation.
type Registry struct {
	builtins map[string]*Builtin
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{builtins: make(map[string]*Builtin)}
}

// Register adds a built-in. Registering the same name twice is a programming
// error and panics.
func (r *Registry) Register(b *Builtin) {
	if _, exists := r.builtins[b.Name]; exists {
		panic(fmt.Sprintf("function with name '%s' already registered", b.Name))
	}
	slog.Debug("Registering function.", "name", b.Name, "unary", b.Unary)
	r.builtins[b.Name] = b
}

// Lookup finds a built-in by its exact, case-sensitive name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Names returns the registered names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := New()
	for _, b := range builtins() {
		r.Register(b)
	}
	return r
})

// Default returns the shared registry with the eleven built-ins. It must be
// treated as read-only.
func Default() *Registry {
	return defaultRegistry()
}

// Reduce folds f left to right over seq, seeding the accumulator with the
// first element. An empty sequence yields the Empty sentinel.
func Reduce(f Func, seq iter.Seq[value.Value]) value.Value {
	acc := value.Error(value.ErrEmpty)
	first := true
	for v := range seq {
		if first {
			acc, first = v, false
			continue
		}
		acc = f(acc, v)
	}
	return acc
}
