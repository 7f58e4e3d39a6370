package docnode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// ParseJSON decodes a single JSON document. Duplicate object keys are an
// error.
func ParseJSON(data []byte) (*Node, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ReadJSON decodes a single JSON document from r.
func ReadJSON(r io.Reader) (*Node, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("docnode: empty JSON document")
		}
		return nil, err
	}
	n, err := readJSONValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("docnode: trailing data after JSON document")
	}
	return n, nil
}

func readJSONValue(dec *j.Decoder, tok any) (*Node, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		}
		return nil, fmt.Errorf("docnode: unexpected delimiter %q", v)
	case string:
		return &Node{Kind: String, Str: v}, nil
	case bool:
		return &Node{Kind: Bool, Bool: v}, nil
	case j.Number:
		return &Node{Kind: Number, Num: string(v)}, nil
	case float64:
		return &Node{Kind: Number, Num: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case nil:
		return &Node{Kind: Null}, nil
	}
	return nil, fmt.Errorf("docnode: unexpected JSON token %T", tok)
}

func readJSONObject(dec *j.Decoder) (*Node, error) {
	n := &Node{Kind: Object}
	seen := map[string]struct{}{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return n, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("docnode: object key must be a string, got %T", tok)
		}
		if _, dup := seen[key]; dup {
			return nil, &DuplicateKeyError{Key: key}
		}
		seen[key] = struct{}{}
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := readJSONValue(dec, vt)
		if err != nil {
			return nil, err
		}
		n.Members = append(n.Members, Member{Key: key, Value: val})
	}
}

func readJSONArray(dec *j.Decoder) (*Node, error) {
	n := &Node{Kind: Array}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return n, nil
		}
		val, err := readJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, val)
	}
}
