package adapter

import (
	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/util/opt"
)

// Temporal backend used by the axis layout engine.
type Backend interface {
	Formats() FormatTable
	Parse(value Input, pattern opt.Opt[string]) (Instant, bool)
	Format(t Instant, pattern string) string
	Add(t Instant, amount int, unit Unit) Instant
	Diff(max Instant, min Instant, unit Unit) int64
	StartOf(t Instant, unit Unit) Instant
	EndOf(t Instant, unit Unit) Instant
}

// Owner of the single temporal backend slot, e.g., axis.Context.
type Host interface {
	UseBackend(b Backend)
}

var _ Backend = (*Adapter)(nil)

// Build Adapter with the format overrides and install it as the host's temporal backend.
//
// The previously installed backend is replaced, the last one wins.
func Initialize(host Host, overrides map[string]string, opts ...Option) *Adapter {
	a := New(append([]Option{WithFormats(overrides)}, opts...)...)
	host.UseBackend(a)
	core.Debugf("Installed temporal adapter, zone: %v", a.cal.Loc)
	return a
}
