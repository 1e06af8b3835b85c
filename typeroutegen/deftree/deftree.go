// Package deftree holds the recursive definition tree mirroring the URL
// segment hierarchy. Routes are folded in by repeated insert-or-descend;
// routes sharing a path prefix share the corresponding subtree.
package deftree

import "strings"

// VerbEntry binds a lowercase HTTP verb at a terminal node to a type name.
type VerbEntry struct {
	Verb     string
	TypeName string
}

// Node is one level of the definition tree. Children keep insertion order so
// emission is deterministic in route-table order.
type Node struct {
	keys     []string
	children map[string]*Node
	terminal bool
	verbs    []VerbEntry
}

// New returns an empty tree root.
func New() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Insert walks or creates a node for every segment key and marks the
// terminal node with one verb entry per method. HEAD never receives a verb
// key. A verb already present on the node is overwritten in place.
func (n *Node) Insert(segments []string, methods []string, typeName string) {
	node := n
	for _, seg := range segments {
		child, ok := node.children[seg]
		if !ok {
			child = New()
			node.keys = append(node.keys, seg)
			node.children[seg] = child
		}
		node = child
	}

	node.terminal = true
	for _, m := range methods {
		verb := strings.ToLower(m)
		if verb == "head" {
			continue
		}
		node.setVerb(verb, typeName)
	}
}

func (n *Node) setVerb(verb, typeName string) {
	for i := range n.verbs {
		if n.verbs[i].Verb == verb {
			n.verbs[i].TypeName = typeName
			return
		}
	}
	n.verbs = append(n.verbs, VerbEntry{Verb: verb, TypeName: typeName})
}

// Keys returns the child segment keys in insertion order.
func (n *Node) Keys() []string { return n.keys }

// Child returns the child node for a segment key, or nil.
func (n *Node) Child(key string) *Node { return n.children[key] }

// Terminal reports whether a route ends at this node.
func (n *Node) Terminal() bool { return n.terminal }

// Verbs returns the verb entries in insertion order.
func (n *Node) Verbs() []VerbEntry { return n.verbs }

// Empty reports whether the node has no children and no verbs.
func (n *Node) Empty() bool { return len(n.keys) == 0 && len(n.verbs) == 0 && !n.terminal }
