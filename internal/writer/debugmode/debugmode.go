// Package debugmode implements the debug output mode: instead of a prose
// rendering, it walks the resolved tree and writes an indented JSON
// representation of every node (kind, index, id, title, children), then
// self-checks that JSON against its own declared schema before writing it
// out, using the jsonschema-go vocabulary.
package debugmode

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/standardbeagle/xmlman/internal/doctree"
)

// node is the debug tree's own serialization shape, independent of
// doctree.Node's internal field names.
type node struct {
	Kind     string  `json:"kind"`
	Index    int     `json:"index,omitempty"`
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title,omitempty"`
	Children []*node `json:"children,omitempty"`
}

func build(tree *doctree.Tree, id doctree.NodeID) *node {
	n := tree.Node(id)
	out := &node{Kind: n.Kind.Name(), Index: n.Index}
	if n.HasTitle {
		out.Title = n.TitleText
	}
	if n.Chapter != nil {
		out.ID = n.Chapter.ID
	}
	for _, child := range tree.Children(id) {
		out.Children = append(out.Children, build(tree, child))
	}
	return out
}

// schema is the debug dump's own declared shape, built afresh on each
// call; the "children" property refers back to the node schema
// itself since the dump is recursively shaped.
func schema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"kind"},
	}
	s.Properties = map[string]*jsonschema.Schema{
		"kind":  {Type: "string"},
		"index": {Type: "integer"},
		"id":    {Type: "string"},
		"title": {Type: "string"},
		"children": {
			Type:  "array",
			Items: s,
		},
	}
	return s
}

// Dump writes root's subtree as indented JSON to w, after validating the
// encoded document against the dump's own schema.
func Dump(tree *doctree.Tree, root doctree.NodeID, w io.Writer) error {
	tracked := build(tree, root)

	encoded, err := json.MarshalIndent(tracked, "", "  ")
	if err != nil {
		return fmt.Errorf("xmlman: encoding debug tree: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return fmt.Errorf("xmlman: re-decoding debug tree: %w", err)
	}

	resolved, err := schema().Resolve(nil)
	if err != nil {
		return fmt.Errorf("xmlman: resolving debug schema: %w", err)
	}
	if err := resolved.Validate(decoded); err != nil {
		return fmt.Errorf("xmlman: debug output failed its own schema: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}
