package ciiubl

import (
	"fmt"
	"strings"
)

// Level classifies the severity of a diagnostic.
type Level string

// Diagnostic levels, ordered by severity.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Diagnostic is a single leveled message recorded during conversion, with an
// optional structural path into the source document.
type Diagnostic struct {
	Level   Level
	Path    []string
	Message string
}

func (d Diagnostic) String() string {
	if len(d.Path) == 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: /%s: %s", d.Level, strings.Join(d.Path, "/"), d.Message)
}

// Diagnostics is an append-only ordered sink of diagnostics. Ordering within
// a conversion is deterministic and follows document traversal order.
type Diagnostics struct {
	entries []Diagnostic
}

// Info records an informational diagnostic.
func (d *Diagnostics) Info(path []string, format string, args ...any) {
	d.add(LevelInfo, path, format, args...)
}

// Warn records a warning diagnostic.
func (d *Diagnostics) Warn(path []string, format string, args ...any) {
	d.add(LevelWarning, path, format, args...)
}

// Error records an error diagnostic.
func (d *Diagnostics) Error(path []string, format string, args ...any) {
	d.add(LevelError, path, format, args...)
}

func (d *Diagnostics) add(lvl Level, path []string, format string, args ...any) {
	d.entries = append(d.entries, Diagnostic{
		Level:   lvl,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns the recorded diagnostics in order.
func (d *Diagnostics) Entries() []Diagnostic {
	return d.entries
}

// HasErrors reports whether at least one error-level diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, e := range d.entries {
		if e.Level == LevelError {
			return true
		}
	}
	return false
}

// path builds an immutable child path. Paths are copied on extension so
// diagnostics recorded later never alias each other's backing arrays.
func path(parent []string, elems ...string) []string {
	p := make([]string, 0, len(parent)+len(elems))
	p = append(p, parent...)
	return append(p, elems...)
}

// Result is the outcome of a conversion: the produced document plus the
// ordered diagnostics. A document may be present even when error-level
// diagnostics were recorded; callers are expected to inspect both.
type Result struct {
	Invoice     *Invoice
	Diagnostics []Diagnostic
}

// HasErrors reports whether the conversion recorded error diagnostics.
func (r *Result) HasErrors() bool {
	for _, e := range r.Diagnostics {
		if e.Level == LevelError {
			return true
		}
	}
	return false
}
