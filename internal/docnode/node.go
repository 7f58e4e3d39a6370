// Package docnode holds an ordered, format-neutral document tree decoded
// from JSON or YAML. Object members keep their source order, which plain
// map decoding loses.
package docnode

import (
	"fmt"
	"strconv"
)

// Kind is the JSON data model kind of a node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded document value. Line and Col are 1-based source
// positions when the decoder provides them and zero otherwise.
type Node struct {
	Kind    Kind
	Bool    bool
	Num     string // number literal as written
	Str     string
	Items   []*Node
	Members []Member
	Line    int
	Col     int
}

// Get returns the value of member key of an object node.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether an object node has member key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Float returns the numeric value of a number node.
func (n *Node) Float() (float64, bool) {
	if n == nil || n.Kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.Num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the value of a number node written as an integer.
func (n *Node) Int() (int64, bool) {
	if n == nil || n.Kind != Number {
		return 0, false
	}
	i, err := strconv.ParseInt(n.Num, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Value converts the node into plain Go values: map[string]any, []any,
// int64 or float64, string, bool and nil.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Bool:
		return n.Bool
	case Number:
		if i, ok := n.Int(); ok {
			return i
		}
		f, _ := n.Float()
		return f
	case String:
		return n.Str
	case Array:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = it.Value()
		}
		return out
	case Object:
		out := make(map[string]any, len(n.Members))
		for _, m := range n.Members {
			out[m.Key] = m.Value.Value()
		}
		return out
	default:
		return nil
	}
}

// Position renders "line:col" when known.
func (n *Node) Position() string {
	if n == nil || n.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", n.Line, n.Col)
}

// DuplicateKeyError reports a duplicate key found in an object with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("duplicate key %q", e.Key)
	}
	return fmt.Sprintf("duplicate key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}
