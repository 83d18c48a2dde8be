// Package driver implements the step-recording shift-reduce parse
// driver (C6): given a grammar, an ACTION/GOTO table, and a token
// list, it runs the canonical LR(1) algorithm and records one
// immutable snapshot per step.
//
// Grounded on nihei9-vartan/driver/parser.go's stack-loop shape,
// generalized away from the teacher's AST/CST-building semantic
// actions (a Non-goal here) to the bare, id-addressed parse-tree arena
// spec.md §3/§9 describes.
package driver

// NodeID identifies a parse-tree node within one parse invocation's
// arena. Ids are allocated sequentially starting at 0 and are never
// reused, so they double as creation order.
type NodeID int

// SymbolKind mirrors the two symbol variants a tree node can carry.
type SymbolKind int

const (
	SymbolKindTerminal SymbolKind = iota
	SymbolKindNonTerminal
)

// Node is one parse-tree node: a leaf for a shifted terminal, or an
// internal node for a reduced production. Children are referenced by
// id, never by pointer, so the tree has no cycles and is trivially
// serializable (spec.md §9).
type Node struct {
	ID         NodeID
	SymbolName string
	Kind       SymbolKind
	Children   []NodeID
	Production *int // nil for terminal leaves
}

// Tree is the arena owning every node created during one parse
// invocation, plus the id of the root once Accept is reached.
type Tree struct {
	nodes []*Node
	Root  NodeID
}

func newTree() *Tree {
	return &Tree{Root: -1}
}

func (t *Tree) newLeaf(symbolName string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{ID: id, SymbolName: symbolName, Kind: SymbolKindTerminal})
	return id
}

func (t *Tree) newInternal(symbolName string, production int, children []NodeID) NodeID {
	id := NodeID(len(t.nodes))
	p := production
	t.nodes = append(t.nodes, &Node{
		ID: id, SymbolName: symbolName, Kind: SymbolKindNonTerminal, Children: children, Production: &p,
	})
	return id
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// NodeCount returns how many nodes exist in the arena.
func (t *Tree) NodeCount() int { return len(t.nodes) }
