package schemadoc

import "fmt"

// Options controls how a document is turned into a bounded.Schema.
type Options struct {
	// Pointer selects the schema inside the document (JSON Pointer, e.g.
	// "/components/schemas/Config"). Empty means the document root, or the
	// openAPIV3Schema of a CRD.
	Pointer string
	// Name overrides the schema name. Defaults to the title, the CRD kind or
	// the last pointer token, in that order.
	Name string
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
