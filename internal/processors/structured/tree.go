package structured

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type kind int

const (
	kindScalar kind = iota
	kindObject
	kindArray
)

// node is a JSON value that keeps object members in document order.
// Array elements are stored as members keyed by their index.
type node struct {
	kind   kind
	keys   []string
	elems  []*node
	scalar any // string, json.Number, bool or nil
}

// decodeTree reads one JSON value from dec. A repeated object key keeps the
// position of its first occurrence and the value of its last. Object members
// are ordered as JavaScript enumerates them.
func decodeTree(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return &node{kind: kindScalar, scalar: tok}, nil
	}

	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func decodeObject(dec *json.Decoder) (*node, error) {
	n := &node{kind: kindObject}
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		child, err := decodeTree(dec)
		if err != nil {
			return nil, err
		}

		if i, dup := index[key]; dup {
			n.elems[i] = child
			continue
		}
		index[key] = len(n.keys)
		n.keys = append(n.keys, key)
		n.elems = append(n.elems, child)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	n.orderMembers()
	return n, nil
}

// maxArrayIndex is the largest key treated as an array index (2^32 - 2).
const maxArrayIndex = 1<<32 - 2

// orderMembers moves array-index keys ahead of the others in ascending
// numeric order. Remaining keys keep their insertion order.
func (n *node) orderMembers() {
	type member struct {
		key   string
		index uint64
		isIdx bool
		elem  *node
	}
	members := make([]member, len(n.keys))
	for i, k := range n.keys {
		idx, ok := arrayIndex(k)
		members[i] = member{key: k, index: idx, isIdx: ok, elem: n.elems[i]}
	}

	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.isIdx != b.isIdx {
			return a.isIdx
		}
		return a.isIdx && a.index < b.index
	})

	for i, m := range members {
		n.keys[i] = m.key
		n.elems[i] = m.elem
	}
}

// arrayIndex reports whether key is a canonical array index: "0" or digits
// without a leading zero, at most maxArrayIndex.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	v, err := strconv.ParseUint(key, 10, 64)
	if err != nil || v > maxArrayIndex {
		return 0, false
	}
	return v, true
}

func decodeArray(dec *json.Decoder) (*node, error) {
	n := &node{kind: kindArray}

	for dec.More() {
		child, err := decodeTree(dec)
		if err != nil {
			return nil, err
		}
		n.keys = append(n.keys, strconv.Itoa(len(n.elems)))
		n.elems = append(n.elems, child)
	}

	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

// isNull reports whether n is the JSON literal null.
func (n *node) isNull() bool {
	return n.kind == kindScalar && n.scalar == nil
}

// member returns the value of key on an object node.
func (n *node) member(key string) (*node, bool) {
	if n.kind != kindObject {
		return nil, false
	}
	for i, k := range n.keys {
		if k == key {
			return n.elems[i], true
		}
	}
	return nil, false
}

// text renders n as a flat string. Arrays join their elements with commas
// and render nulls as empty; objects render as compact JSON.
func (n *node) text() string {
	switch n.kind {
	case kindArray:
		parts := make([]string, len(n.elems))
		for i, e := range n.elems {
			parts[i] = e.text()
		}
		return strings.Join(parts, ",")
	case kindObject:
		var b strings.Builder
		n.writeJSON(&b)
		return b.String()
	}

	switch v := n.scalar.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (n *node) writeJSON(b *strings.Builder) {
	switch n.kind {
	case kindObject:
		b.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			key, _ := json.Marshal(k)
			b.Write(key)
			b.WriteByte(':')
			n.elems[i].writeJSON(b)
		}
		b.WriteByte('}')
	case kindArray:
		b.WriteByte('[')
		for i, e := range n.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeJSON(b)
		}
		b.WriteByte(']')
	default:
		raw, _ := json.Marshal(n.scalar)
		b.Write(raw)
	}
}
