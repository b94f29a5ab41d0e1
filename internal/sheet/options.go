package sheet

import (
	"github.com/specialistvlad/gridsheet/internal/funcs"
	"github.com/specialistvlad/gridsheet/internal/messages"
)

// Option configures a Sheet.
type Option func(*Sheet)

// WithRegistry replaces the built-in function table.
func WithRegistry(reg *funcs.Registry) Option {
	return func(s *Sheet) { s.registry = reg }
}

// WithLanguage selects the language of error texts.
func WithLanguage(lang messages.Language) Option {
	return func(s *Sheet) { s.lang = lang }
}

// WithStrictCycles makes propagation mark any cell that reappears on the
// current propagation path, not only the edit root.
func WithStrictCycles() Option {
	return func(s *Sheet) { s.strict = true }
}

// WithObserver registers an observer for cell updates.
func WithObserver(o Observer) Option {
	return func(s *Sheet) { s.observers = append(s.observers, o) }
}
