package ui

import (
	"maps"
	"slices"
	"strings"

	"unishark/internal/naming"
)

// NodeKind tells what a tree node stands for
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindModule
	KindClass
	KindMethod
)

// TreeNode represents a node in the module → class → method structure
type TreeNode struct {
	Name     string
	Kind     NodeKind
	Children map[string]*TreeNode
}

// NewTestTree groups fully-qualified test names by module and class. The module is everything before the last two
// segments, so package prefixes stay part of the module name.
func NewTestTree(names []string) *TreeNode {
	root := newNode("", KindRoot)

	for _, name := range names {
		parts := naming.Split(name)
		if len(parts) < 3 {
			root.child(name, KindMethod)
			continue
		}

		module := strings.Join(parts[:len(parts)-2], naming.Separator)
		root.child(module, KindModule).
			child(parts[len(parts)-2], KindClass).
			child(parts[len(parts)-1], KindMethod)
	}

	return root
}

func newNode(name string, kind NodeKind) *TreeNode {
	return &TreeNode{Name: name, Kind: kind, Children: make(map[string]*TreeNode)}
}

func (n *TreeNode) child(name string, kind NodeKind) *TreeNode {
	c, ok := n.Children[name]
	if !ok {
		c = newNode(name, kind)
		n.Children[name] = c
	}
	return c
}

// Sorted returns the children ordered by name
func (n *TreeNode) Sorted() []*TreeNode {
	nodes := make([]*TreeNode, 0, len(n.Children))
	for _, key := range slices.Sorted(maps.Keys(n.Children)) {
		nodes = append(nodes, n.Children[key])
	}
	return nodes
}

// Leaves counts the methods below the node
func (n *TreeNode) Leaves() int {
	if n.Kind == KindMethod {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Leaves()
	}
	return total
}
