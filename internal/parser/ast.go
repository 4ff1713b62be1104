package parser

import "strings"

// NodeKind is the language-neutral tag of a syntax-tree node. Every algorithm
// downstream depends only on this tagged-variant shape, never on a particular
// grammar's object model.
type NodeKind string

// Language-neutral node kinds. Grammar node types without a mapping pass
// through verbatim so signatures stay informative.
const (
	KindModule    NodeKind = "Module"
	KindFunction  NodeKind = "Function"
	KindClass     NodeKind = "Class"
	KindIf        NodeKind = "If"
	KindElif      NodeKind = "Elif"
	KindElse      NodeKind = "Else"
	KindFor       NodeKind = "For"
	KindWhile     NodeKind = "While"
	KindTry       NodeKind = "Try"
	KindExcept    NodeKind = "Except"
	KindFinally   NodeKind = "Finally"
	KindWith      NodeKind = "With"
	KindSwitch    NodeKind = "Switch"
	KindCase      NodeKind = "Case"
	KindReturn    NodeKind = "Return"
	KindBreak     NodeKind = "Break"
	KindContinue  NodeKind = "Continue"
	KindRaise     NodeKind = "Raise"
	KindAssert    NodeKind = "Assert"
	KindAssign    NodeKind = "Assign"
	KindAugAssign NodeKind = "AugAssign"
	KindBinOp     NodeKind = "BinOp"
	KindUnaryOp   NodeKind = "UnaryOp"
	KindBoolOp    NodeKind = "BoolOp"
	KindCompare   NodeKind = "Compare"
	KindCall      NodeKind = "Call"
	KindLambda    NodeKind = "Lambda"
	KindAttribute NodeKind = "Attribute"
	KindSubscript NodeKind = "Subscript"
	KindName      NodeKind = "Name"
	KindNumber    NodeKind = "Number"
	KindString    NodeKind = "String"
	KindList      NodeKind = "List"
	KindDict      NodeKind = "Dict"
	KindTuple     NodeKind = "Tuple"
	KindImport    NodeKind = "Import"
	KindBlock     NodeKind = "Block"
	KindExpr      NodeKind = "Expr"
	KindPass      NodeKind = "Pass"
)

// Location represents the position of a node in the source code
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Node is the parser-independent syntax-tree node: a kind, ordered children,
// and an optional name or literal payload.
type Node struct {
	Kind     NodeKind
	Name     string // identifier payload for Name/Function/Class/Call nodes
	Literal  string // literal payload for Number/String nodes
	Op       string // operator payload for BinOp/UnaryOp/BoolOp/Compare/AugAssign
	Children []*Node
	Location Location
}

// AddChild appends a child node, ignoring nil.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// KindSequence returns the pre-order list of node kinds.
func (n *Node) KindSequence() []NodeKind {
	var kinds []NodeKind
	n.Walk(func(node *Node) {
		kinds = append(kinds, node.Kind)
	})
	return kinds
}

// controlFlowKinds are the constructs that make up the control-flow sequence
// used by semantic similarity.
var controlFlowKinds = map[NodeKind]struct{}{
	KindIf:      {},
	KindElif:    {},
	KindElse:    {},
	KindFor:     {},
	KindWhile:   {},
	KindTry:     {},
	KindExcept:  {},
	KindFinally: {},
	KindWith:    {},
	KindSwitch:  {},
	KindCase:    {},
}

// IsControlFlow reports whether a kind is a control-flow construct.
func IsControlFlow(kind NodeKind) bool {
	_, ok := controlFlowKinds[kind]
	return ok
}

// Signature serializes the tree shape as node-kind names only, recursively
// over children: a two-child conditional becomes `(If,(Expr),(Block))`.
// Names and literals never appear, so two programs with identical control
// structure but different identifiers converge to the same signature.
func (n *Node) Signature() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeSignature(&b)
	return b.String()
}

func (n *Node) writeSignature(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(string(n.Kind))
	for _, child := range n.Children {
		b.WriteByte(',')
		child.writeSignature(b)
	}
	b.WriteByte(')')
}

// CountKind returns the number of nodes of the given kind in the tree.
func (n *Node) CountKind(kind NodeKind) int {
	count := 0
	n.Walk(func(node *Node) {
		if node.Kind == kind {
			count++
		}
	})
	return count
}
