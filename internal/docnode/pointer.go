package docnode

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeToken escapes a JSON Pointer reference token per RFC 6901
// ('~' -> '~0', '/' -> '~1').
func EscapeToken(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(tok string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
}

// Join appends escaped tokens to a pointer.
func Join(ptr string, tokens ...string) string {
	var b strings.Builder
	b.WriteString(ptr)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// Resolve follows a JSON Pointer from n. A leading '#' (URI fragment form)
// is accepted; "" and "#" address n itself.
func (n *Node) Resolve(ptr string) (*Node, error) {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" {
		return n, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("docnode: invalid JSON pointer %q", ptr)
	}
	cur := n
	for _, raw := range strings.Split(ptr[1:], "/") {
		tok := UnescapeToken(raw)
		switch {
		case cur == nil:
			return nil, fmt.Errorf("docnode: pointer %q: path not found", ptr)
		case cur.Kind == Object:
			next, ok := cur.Get(tok)
			if !ok {
				return nil, fmt.Errorf("docnode: pointer %q: no member %q", ptr, tok)
			}
			cur = next
		case cur.Kind == Array:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(cur.Items) {
				return nil, fmt.Errorf("docnode: pointer %q: bad index %q", ptr, tok)
			}
			cur = cur.Items[i]
		default:
			return nil, fmt.Errorf("docnode: pointer %q: cannot descend into %s", ptr, cur.Kind)
		}
	}
	return cur, nil
}
