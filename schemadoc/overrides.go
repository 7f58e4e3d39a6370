package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/internal/docnode"
)

// overrideDoc is one entry of an override file. Default is kept as a node so
// an explicit null default can be told apart from an absent one.
type overrideDoc struct {
	Ge      *float64  `yaml:"ge"`
	Le      *float64  `yaml:"le"`
	Gt      *float64  `yaml:"gt"`
	Lt      *float64  `yaml:"lt"`
	Default yaml.Node `yaml:"default"`
}

// LoadOverrides reads a YAML (or JSON) mapping from dotted field path to
// {ge, le, gt, lt, default}. Unknown keys and duplicate paths are errors.
//
//	rate: {ge: 0, le: 0.5}
//	inner.name: {default: fixed}
func LoadOverrides(data []byte) (bounded.Overrides, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var raw map[string]overrideDoc
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return bounded.Overrides{}, nil
		}
		return nil, fmt.Errorf("schemadoc: overrides: %w", err)
	}
	out := make(bounded.Overrides, len(raw))
	for path, doc := range raw {
		o := bounded.Override{Ge: doc.Ge, Le: doc.Le, Gt: doc.Gt, Lt: doc.Lt}
		if doc.Default.Kind != 0 {
			n, err := docnode.FromYAML(&doc.Default)
			if err != nil {
				return nil, fmt.Errorf("schemadoc: overrides: %s: %w", path, err)
			}
			o.Default, o.HasDefault = n.Value(), true
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("schemadoc: overrides: %s: %w", path, err)
		}
		out[path] = o
	}
	return out, nil
}
