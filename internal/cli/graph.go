package cli

import (
	"encoding/json"
	"fmt"

	"github.com/longlodw/rowfold/record"
)

// document is one entity of the printed graph: its columns plus nested children.
type document = map[string]any

// node is a document together with the grouping key read from its row.
type node struct {
	doc document
	key string
}

func (n *node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.doc)
}

// nodeMapper binds a segment to a node. keyColumn is looked up through
// record.Row.Get, so it matches without regard to case and a missing column
// fails the query. An empty keyColumn reads no key.
func nodeMapper(keyColumn string) record.Mapper[*node] {
	return func(row record.Row) (*node, error) {
		m, err := row.ToMap()
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		n := &node{doc: m}
		if keyColumn == "" {
			return n, nil
		}
		v, err := row.Get(keyColumn)
		if err != nil {
			return nil, err
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		n.key = fmt.Sprintf("%T:%v", v, v)
		return n, nil
	}
}

// isNull reports whether every column of d is NULL, as for the missing side
// of an outer join. Nested children are not columns and are ignored.
func isNull(d document) bool {
	for _, v := range d {
		switch v.(type) {
		case nil, []any, document, *node:
			continue
		}
		return false
	}
	return true
}

func nodeKey(n *node) string {
	return n.key
}

func appendChild(field string) func(*node, *node) {
	return func(parent, child *node) {
		children, _ := parent.doc[field].([]any)
		if children == nil {
			children = make([]any, 0)
		}
		if !isNull(child.doc) {
			children = append(children, child)
		}
		parent.doc[field] = children
	}
}

func setChild(field string) func(*node, *node) {
	return func(parent, child *node) {
		if isNull(child.doc) {
			parent.doc[field] = nil
			return
		}
		parent.doc[field] = child
	}
}
