package parser

import (
	"fmt"

	"github.com/nihei9/fa/automaton"
)

// Node is a node of a syntax tree of a pattern. The concrete types are *SymbolNode, *ConcatNode, *AltNode,
// *StarNode, and *EmptyNode.
type Node interface {
	fmt.Stringer
	node()
}

type SymbolNode struct {
	Symbol automaton.Symbol
	Pos    int
}

func newSymbolNode(c rune) *SymbolNode {
	return &SymbolNode{
		Symbol: automaton.Symbol(c),
	}
}

func (n *SymbolNode) String() string {
	return n.Symbol.String()
}

func (n *SymbolNode) node() {}

type ConcatNode struct {
	Left  Node
	Right Node
}

func newConcatNode(left, right Node) *ConcatNode {
	return &ConcatNode{
		Left:  left,
		Right: right,
	}
}

func (n *ConcatNode) String() string {
	return fmt.Sprintf("concat(%v, %v)", n.Left, n.Right)
}

func (n *ConcatNode) node() {}

type AltNode struct {
	Left  Node
	Right Node
}

func newAltNode(left, right Node) *AltNode {
	return &AltNode{
		Left:  left,
		Right: right,
	}
}

func (n *AltNode) String() string {
	return fmt.Sprintf("alt(%v, %v)", n.Left, n.Right)
}

func (n *AltNode) node() {}

type StarNode struct {
	Inner Node
}

func newStarNode(inner Node) *StarNode {
	return &StarNode{
		Inner: inner,
	}
}

func (n *StarNode) String() string {
	return fmt.Sprintf("star(%v)", n.Inner)
}

func (n *StarNode) node() {}

// EmptyNode matches only the empty string.
type EmptyNode struct{}

func newEmptyNode() *EmptyNode {
	return &EmptyNode{}
}

func (n *EmptyNode) String() string {
	return "empty"
}

func (n *EmptyNode) node() {}

// CollectAlphabet returns the symbols appearing in a tree in the order they appear in the pattern.
func CollectAlphabet(root Node) *automaton.Alphabet {
	alpha := automaton.NewAlphabet()
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *SymbolNode:
			alpha.Add(n.Symbol)
		case *ConcatNode:
			walk(n.Left)
			walk(n.Right)
		case *AltNode:
			walk(n.Left)
			walk(n.Right)
		case *StarNode:
			walk(n.Inner)
		}
	}
	walk(root)
	return alpha
}

func genConcatNode(cs ...Node) Node {
	nonNilNodes := []Node{}
	for _, c := range cs {
		if c == nil {
			continue
		}
		nonNilNodes = append(nonNilNodes, c)
	}
	if len(nonNilNodes) <= 0 {
		return nil
	}
	var concat Node = nonNilNodes[0]
	for _, c := range nonNilNodes[1:] {
		concat = newConcatNode(concat, c)
	}
	return concat
}

func genAltNode(cs ...Node) Node {
	nonNilNodes := []Node{}
	for _, c := range cs {
		if c == nil {
			continue
		}
		nonNilNodes = append(nonNilNodes, c)
	}
	if len(nonNilNodes) <= 0 {
		return nil
	}
	var alt Node = nonNilNodes[0]
	for _, c := range nonNilNodes[1:] {
		alt = newAltNode(alt, c)
	}
	return alt
}
