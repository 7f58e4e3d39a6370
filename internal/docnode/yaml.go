package docnode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the first document of a YAML stream.
func ParseYAML(data []byte) (*Node, error) {
	docs, err := ParseYAMLAll(data)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("docnode: empty YAML document")
	}
	return docs[0], nil
}

// ParseYAMLAll decodes every document of a YAML stream. Empty documents are
// skipped; duplicate mapping keys are an error.
func ParseYAMLAll(data []byte) ([]*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*Node
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		if len(root.Content) == 0 {
			continue
		}
		n, err := FromYAML(root.Content[0])
		if err != nil {
			return nil, err
		}
		if n.Kind == Null {
			continue
		}
		out = append(out, n)
	}
}

// FromYAML converts a yaml.Node. Aliases are expanded.
func FromYAML(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{Kind: Null, Line: y.Line, Col: y.Column}, nil
		}
		return FromYAML(y.Content[0])
	case yaml.AliasNode:
		return FromYAML(y.Alias)
	case yaml.MappingNode:
		n := &Node{Kind: Object, Line: y.Line, Col: y.Column}
		first := make(map[string][2]int, len(y.Content)/2)
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if pos, dup := first[k.Value]; dup {
				return nil, &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			val, err := FromYAML(v)
			if err != nil {
				return nil, err
			}
			n.Members = append(n.Members, Member{Key: k.Value, Value: val})
		}
		return n, nil
	case yaml.SequenceNode:
		n := &Node{Kind: Array, Line: y.Line, Col: y.Column}
		for _, c := range y.Content {
			val, err := FromYAML(c)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, val)
		}
		return n, nil
	case yaml.ScalarNode:
		return yamlScalar(y), nil
	}
	return &Node{Kind: Null, Line: y.Line, Col: y.Column}, nil
}

func yamlScalar(y *yaml.Node) *Node {
	n := &Node{Line: y.Line, Col: y.Column}
	switch y.ShortTag() {
	case "!!null":
		n.Kind = Null
	case "!!bool":
		if b, err := strconv.ParseBool(strings.ToLower(y.Value)); err == nil {
			n.Kind, n.Bool = Bool, b
			return n
		}
		n.Kind, n.Str = String, y.Value
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(y.Value, "_", ""), 0, 64); err == nil {
			n.Kind, n.Num = Number, strconv.FormatInt(i, 10)
			return n
		}
		n.Kind, n.Str = String, y.Value
	case "!!float":
		if f, err := parseYAMLFloat(y.Value); err == nil {
			n.Kind, n.Num = Number, strconv.FormatFloat(f, 'g', -1, 64)
			return n
		}
		n.Kind, n.Str = String, y.Value
	default:
		n.Kind, n.Str = String, y.Value
	}
	return n
}

func parseYAMLFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return strconv.ParseFloat("+Inf", 64)
	case "-.inf":
		return strconv.ParseFloat("-Inf", 64)
	case ".nan":
		return strconv.ParseFloat("NaN", 64)
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}
