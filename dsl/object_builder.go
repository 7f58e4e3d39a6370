package dsl

import (
	"github.com/reoring/bounded"
)

type objectBuilder struct {
	name   string
	fields []bounded.Field
	index  map[string]int
	issues bounded.Issues
}

type fieldStep struct {
	b   *objectBuilder
	pos int
}

// Object creates a new builder for a schema called name. Fields keep the
// order of the Field calls.
func Object(name string) *objectBuilder {
	return &objectBuilder{name: name, index: map[string]int{}}
}

// Field appends a field described by spec.
func (b *objectBuilder) Field(name string, spec Spec) *fieldStep {
	f := spec.Descriptor()
	f.Name = name
	if _, dup := b.index[name]; dup {
		b.issues = append(b.issues, bounded.Issue{Path: name, Code: bounded.CodeInvalidSchema, Message: "duplicate field " + name})
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, f)
	return &fieldStep{b: b, pos: len(b.fields) - 1}
}

// Default sets a declared default for the current field.
func (f *fieldStep) Default(v any) *objectBuilder {
	fd := &f.b.fields[f.pos]
	fd.Default, fd.HasDefault = v, true
	return f.b
}

// DefaultFunc sets a default factory for the current field. The factory is
// called for every sample that uses it.
func (f *fieldStep) DefaultFunc(fn func() any) *objectBuilder {
	f.b.fields[f.pos].DefaultFactory = fn
	return f.b
}

func (f *fieldStep) Field(name string, spec Spec) *fieldStep { return f.b.Field(name, spec) }
func (f *fieldStep) Build() (*bounded.Schema, error)         { return f.b.Build() }
func (f *fieldStep) MustBuild() *bounded.Schema              { return f.b.MustBuild() }

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (*bounded.Schema, error) {
	if len(b.issues) > 0 {
		return nil, append(bounded.Issues(nil), b.issues...)
	}
	return bounded.NewSchema(b.name, b.fields...)
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *bounded.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
