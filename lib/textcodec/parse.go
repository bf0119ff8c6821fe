// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textcodec

import (
	"fmt"
	"strings"
)

// ParseError reports a line that does not fit the line grammar.
type ParseError struct {
	// Line is 1-based.
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textcodec: line %d: %s", e.Line, e.Reason)
}

// Node is one parsed "name: value" line with its nested lines.
type Node struct {
	Name string

	// Raw is the text after ": ", empty for a nested block.
	Raw string

	Children []*Node

	// Strings holds the quoted lines of a multi-line string, still
	// quoted.
	Strings []string

	// Line is the 1-based source line.
	Line int
}

// Child returns the first child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// IsNull reports whether the node holds the null token.
func (n *Node) IsNull() bool {
	return n.Raw == Null && len(n.Children) == 0 && len(n.Strings) == 0
}

// Parse reads text into a tree. The returned root has no name; its
// children are the depth-0 lines.
func Parse(text string) (*Node, error) {
	root := &Node{}
	// open[d] is the node most recently read at depth d, the parent
	// for lines at depth d+1.
	var open []*Node

	for index, line := range strings.Split(text, "\n") {
		number := index + 1
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
			continue
		}

		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		content := strings.TrimRight(line[depth:], " \t")

		if strings.HasPrefix(content, `"`) {
			if depth == 0 || depth > len(open) {
				return nil, &ParseError{Line: number, Reason: "string line without an enclosing value"}
			}
			owner := open[depth-1]
			if owner.Raw != "" || len(owner.Children) != 0 {
				return nil, &ParseError{Line: number, Reason: fmt.Sprintf("string line under %q, which is not a multi-line string", owner.Name)}
			}
			owner.Strings = append(owner.Strings, content)
			continue
		}

		if depth > len(open) {
			return nil, &ParseError{Line: number, Reason: fmt.Sprintf("indented %d levels under a depth-%d line", depth, len(open)-1)}
		}
		name, raw, ok := strings.Cut(content, ": ")
		if !ok {
			if !strings.HasSuffix(content, ":") {
				return nil, &ParseError{Line: number, Reason: fmt.Sprintf("expected \"name: value\", got %q", content)}
			}
			name, raw = strings.TrimSuffix(content, ":"), ""
		}
		node := &Node{Name: name, Raw: strings.TrimSpace(raw), Line: number}

		parent := root
		if depth > 0 {
			parent = open[depth-1]
			if parent.Raw != "" {
				return nil, &ParseError{Line: number, Reason: fmt.Sprintf("nested line under %q, which has an inline value", parent.Name)}
			}
		}
		parent.Children = append(parent.Children, node)
		open = append(open[:depth], node)
	}
	return root, nil
}
