package schemadoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/internal/docnode"
	"github.com/reoring/bounded/jsonschema"
)

// ImportJSON imports a JSON document: a JSON Schema, an OpenAPI document
// (with Options.Pointer) or a Kubernetes CRD.
func ImportJSON(data []byte, opts Options) (*bounded.Schema, Diag, error) {
	root, err := docnode.ParseJSON(data)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("schemadoc: invalid JSON: %w", err)
	}
	return importNode(root, opts)
}

// ImportYAML imports the first document of a YAML stream.
func ImportYAML(data []byte, opts Options) (*bounded.Schema, Diag, error) {
	root, err := docnode.ParseYAML(data)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("schemadoc: invalid YAML: %w", err)
	}
	return importNode(root, opts)
}

// ImportYAMLForCRDKind scans a multi-document YAML stream (e.g. a CRD bundle)
// and imports the first CustomResourceDefinition whose spec.names.kind is kind.
func ImportYAMLForCRDKind(data []byte, kind string, opts Options) (*bounded.Schema, Diag, error) {
	docs, err := docnode.ParseYAMLAll(data)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("schemadoc: invalid YAML: %w", err)
	}
	for _, doc := range docs {
		if !isCRD(doc) {
			continue
		}
		if k, _ := doc.Resolve("/spec/names/kind"); k != nil && k.Str == kind {
			return importNode(doc, opts)
		}
	}
	return nil, &simpleDiag{}, fmt.Errorf("schemadoc: CRD kind %q not found in YAML bundle", kind)
}

// Import maps an already decoded schema. $ref is resolved against its own
// $defs and definitions.
func Import(s *jsonschema.Schema, opts Options) (*bounded.Schema, Diag, error) {
	d := &simpleDiag{}
	if s == nil {
		return nil, d, errors.New("schemadoc: nil schema")
	}
	imp := newImporter(defsResolver(s), d)
	out, err := imp.root(s, rootName(opts, s.Title, ""))
	return out, d, err
}

func importNode(root *docnode.Node, opts Options) (*bounded.Schema, Diag, error) {
	d := &simpleDiag{}
	base, fallback := root, ""
	target := root
	switch {
	case opts.Pointer != "":
		n, err := root.Resolve(opts.Pointer)
		if err != nil {
			return nil, d, fmt.Errorf("schemadoc: %w", err)
		}
		target = n
		if i := strings.LastIndex(opts.Pointer, "/"); i >= 0 {
			fallback = docnode.UnescapeToken(opts.Pointer[i+1:])
		}
	case root.Has("openAPIV3Schema"):
		target, _ = root.Get("openAPIV3Schema")
		base = target
	case isCRD(root):
		n, err := unwrapCRD(root)
		if err != nil {
			return nil, d, err
		}
		target, base = n, n
		if k, _ := root.Resolve("/spec/names/kind"); k != nil {
			fallback = k.Str
		}
	}
	s, err := jsonschema.FromNode(target)
	if err != nil {
		return nil, d, fmt.Errorf("schemadoc: %w", err)
	}
	imp := newImporter(nodeResolver(base), d)
	out, err := imp.root(s, rootName(opts, s.Title, fallback))
	return out, d, err
}

func rootName(opts Options, title, fallback string) string {
	switch {
	case opts.Name != "":
		return opts.Name
	case title != "":
		return title
	case fallback != "":
		return fallback
	}
	return "Root"
}

func isCRD(n *docnode.Node) bool {
	k, ok := n.Get("kind")
	return ok && k.Kind == docnode.String && k.Str == "CustomResourceDefinition"
}

// unwrapCRD extracts spec.versions[].schema.openAPIV3Schema, preferring a
// served version, then falls back to the legacy spec.validation form.
func unwrapCRD(root *docnode.Node) (*docnode.Node, error) {
	var first *docnode.Node
	if vers, _ := root.Resolve("/spec/versions"); vers != nil && vers.Kind == docnode.Array {
		for _, v := range vers.Items {
			oas, err := v.Resolve("/schema/openAPIV3Schema")
			if err != nil {
				continue
			}
			served := true
			if sv, ok := v.Get("served"); ok && sv.Kind == docnode.Bool {
				served = sv.Bool
			}
			if served {
				return oas, nil
			}
			if first == nil {
				first = oas
			}
		}
	}
	if first != nil {
		return first, nil
	}
	if oas, err := root.Resolve("/spec/validation/openAPIV3Schema"); err == nil {
		return oas, nil
	}
	return nil, errors.New("schemadoc: CRD has no openAPIV3Schema")
}

// resolver looks up the target of a $ref.
type resolver func(ref string) (*jsonschema.Schema, error)

func nodeResolver(base *docnode.Node) resolver {
	cache := map[string]*jsonschema.Schema{}
	return func(ref string) (*jsonschema.Schema, error) {
		if !strings.HasPrefix(ref, "#") {
			return nil, fmt.Errorf("$ref %q not supported (local references only)", ref)
		}
		if s, ok := cache[ref]; ok {
			return s, nil
		}
		n, err := base.Resolve(ref)
		if err != nil {
			return nil, err
		}
		s, err := jsonschema.FromNode(n)
		if err != nil {
			return nil, err
		}
		cache[ref] = s
		return s, nil
	}
}

func defsResolver(root *jsonschema.Schema) resolver {
	return func(ref string) (*jsonschema.Schema, error) {
		if ref == "#" {
			return root, nil
		}
		for prefix, props := range map[string]*jsonschema.Properties{
			"#/$defs/":       root.Defs,
			"#/definitions/": root.Definitions,
		} {
			if !strings.HasPrefix(ref, prefix) {
				continue
			}
			key := docnode.UnescapeToken(strings.TrimPrefix(ref, prefix))
			if s, ok := props.Get(key); ok {
				return s, nil
			}
			return nil, fmt.Errorf("$ref to unknown definition %q", key)
		}
		return nil, fmt.Errorf("$ref %q not supported (local $defs and definitions only)", ref)
	}
}
