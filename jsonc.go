// Package jsonc implements a lossless concrete syntax tree (CST) for
// JSON-with-comments text. Parsing preserves every source byte — comments,
// whitespace, trailing commas, quoting style, number formatting — in a
// typed node graph that a host program can navigate and mutate while
// keeping human-authored formatting intact.
package jsonc

import "strings"

// Kind tags every node in the tree with the production or token family it
// belongs to.
type Kind int

const (
	KindRoot Kind = iota
	KindObject
	KindArray
	KindObjectProperty

	KindString
	KindNumber
	KindBoolean
	KindNull
	KindWord

	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindComma
	KindColon

	KindWhitespace
	KindNewline
	KindLineComment
	KindBlockComment

	numKinds
)

var kindStrings = [numKinds]string{
	"Root", "Object", "Array", "ObjectProperty",
	"String", "Number", "Boolean", "Null", "Word",
	"{", "}", "[", "]", ",", ":",
	"Whitespace", "Newline", "LineComment", "BlockComment",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return "Unknown"
	}
	return kindStrings[k]
}

// Node is the public CST node interface. It is deliberately read-only:
// structural mutation is only possible through the operations in
// mutate.go, so a caller can never splice a child into a parent's
// children slice directly and leave the tree in an incoherent state.
type Node interface {
	Kind() Kind
	Text() string
	Parent() Node
	ChildIndex() int
	Children() []Node
}

// attacher is implemented by every concrete node pointer type via the
// promoted pointer-receiver methods on baseNode. It is unexported: only
// this package's own mutation code may move nodes between parents.
type attacher interface {
	setParent(Node)
	setChildIndex(int)
	setDetached()
	isDetached() bool
}

// containerNode is implemented by every node type that owns a children
// slice directly (as opposed to deriving Children() from typed fields).
type containerNode interface {
	Node
	childSlice() *[]Node
}

// baseNode carries the attributes common to every node: its kind, a weak
// back-reference to the parent, the node's position among its parent's
// children, and whether it has been removed from the tree.
type baseNode struct {
	kind       Kind
	parent     Node
	childIndex int
	detached   bool
}

func (b *baseNode) Kind() Kind          { return b.kind }
func (b *baseNode) Parent() Node        { return b.parent }
func (b *baseNode) ChildIndex() int     { return b.childIndex }
func (b *baseNode) setParent(p Node)    { b.parent = p }
func (b *baseNode) setChildIndex(i int) { b.childIndex = i }
func (b *baseNode) setDetached()        { b.detached = true }
func (b *baseNode) isDetached() bool    { return b.detached }

// leaf is embedded by every token node (value leaves, structural tokens,
// and trivia). Its text is exactly the source bytes it represents, or for
// a synthesized node, the bytes chosen by the mutation engine.
type leaf struct {
	baseNode
	text string
}

func (l *leaf) Text() string     { return l.text }
func (l *leaf) Children() []Node { return nil }

func newLeaf(kind Kind, text string) leaf {
	return leaf{baseNode: baseNode{kind: kind}, text: text}
}

// --- Value leaves ---

// StringNode is a quoted string literal, key name, or property name.
type StringNode struct{ leaf }

// NumberNode is a number literal. Its source text is preserved verbatim
// in Text(); NumberValue parses it as a float64.
type NumberNode struct{ leaf }

// BooleanNode is the literal `true` or `false`.
type BooleanNode struct{ leaf }

// NullNode is the literal `null`.
type NullNode struct{ leaf }

// WordNode is a bare identifier used as an object key under
// AllowLooseObjectPropertyNames.
type WordNode struct{ leaf }

// --- Structural tokens ---

// TokenNode is a single-character structural token: one of `{` `}` `[`
// `]` `,` `:`.
type TokenNode struct{ leaf }

// --- Trivia ---

// WhitespaceNode is a run of spaces and/or tabs.
type WhitespaceNode struct{ leaf }

// NewlineNode is a single line ending, `\n` or `\r\n`.
type NewlineNode struct{ leaf }

// LineCommentNode is a `//` comment, not including its terminating
// newline.
type LineCommentNode struct{ leaf }

// BlockCommentNode is a `/* ... */` comment.
type BlockCommentNode struct{ leaf }

func newString(text string) *StringNode { return &StringNode{newLeaf(KindString, text)} }
func newNumber(text string) *NumberNode { return &NumberNode{newLeaf(KindNumber, text)} }
func newBoolean(text string) *BooleanNode { return &BooleanNode{newLeaf(KindBoolean, text)} }
func newNull() *NullNode                  { return &NullNode{newLeaf(KindNull, "null")} }
func newWord(text string) *WordNode       { return &WordNode{newLeaf(KindWord, text)} }
func newToken(kind Kind, text string) *TokenNode { return &TokenNode{newLeaf(kind, text)} }
func newWhitespace(text string) *WhitespaceNode {
	return &WhitespaceNode{newLeaf(KindWhitespace, text)}
}
func newNewline(text string) *NewlineNode { return &NewlineNode{newLeaf(KindNewline, text)} }
func newLineComment(text string) *LineCommentNode {
	return &LineCommentNode{newLeaf(KindLineComment, text)}
}
func newBlockComment(text string) *BlockCommentNode {
	return &BlockCommentNode{newLeaf(KindBlockComment, text)}
}

// --- Containers ---

// Root is the CST for an entire document. It has at most one significant
// value child (invariant: Single-value containers).
type Root struct {
	baseNode
	children []Node
	value    Node
}

func (r *Root) Children() []Node   { return r.children }
func (r *Root) childSlice() *[]Node { return &r.children }
func (r *Root) Text() string       { return renderText(r) }

// Value returns the document's single significant value, or nil if the
// document is empty.
func (r *Root) Value() Node { return r.value }

// RootNode walks Parent() until it reaches the tree's Root.
func RootNode(n Node) *Root {
	for n != nil {
		if root, ok := n.(*Root); ok {
			return root
		}
		n = n.Parent()
	}
	return nil
}

// Object is a `{ ... }` container of ObjectProperty children.
type Object struct {
	baseNode
	children []Node
}

func (o *Object) Children() []Node   { return o.children }
func (o *Object) childSlice() *[]Node { return &o.children }
func (o *Object) Text() string       { return renderText(o) }

// Properties returns the ordered sequence of ObjectProperty children.
func (o *Object) Properties() []*ObjectProperty {
	out := make([]*ObjectProperty, 0, len(o.children))
	for _, c := range o.children {
		if p, ok := c.(*ObjectProperty); ok {
			out = append(out, p)
		}
	}
	return out
}

// Array is a `[ ... ]` container of value-element children.
type Array struct {
	baseNode
	children []Node
}

func (a *Array) Children() []Node   { return a.children }
func (a *Array) childSlice() *[]Node { return &a.children }
func (a *Array) Text() string       { return renderText(a) }

// Elements returns the ordered sequence of significant value children,
// skipping commas and trivia.
func (a *Array) Elements() []Node {
	out := make([]Node, 0, len(a.children))
	for _, c := range a.children {
		if isSignificant(c) {
			out = append(out, c)
		}
	}
	return out
}

// ObjectProperty is a single `name : value` pair inside an Object.
type ObjectProperty struct {
	baseNode
	children []Node
	name     Node
	value    Node
}

func (p *ObjectProperty) Children() []Node   { return p.children }
func (p *ObjectProperty) childSlice() *[]Node { return &p.children }
func (p *ObjectProperty) Text() string       { return renderText(p) }

// Name returns the property-name node: a *StringNode, or a *WordNode
// under AllowLooseObjectPropertyNames.
func (p *ObjectProperty) Name() Node { return p.name }

// Value returns the property's single value child, or nil if malformed
// (this can only happen on a node under construction; a fully parsed or
// mutated tree always has one).
func (p *ObjectProperty) Value() Node { return p.value }

// --- Shared predicates ---

func isTrivia(n Node) bool {
	switch n.Kind() {
	case KindWhitespace, KindNewline, KindLineComment, KindBlockComment:
		return true
	default:
		return false
	}
}

func isStructuralToken(n Node) bool {
	switch n.Kind() {
	case KindLBrace, KindRBrace, KindLBracket, KindRBracket, KindComma, KindColon:
		return true
	default:
		return false
	}
}

// isSignificant reports whether n is a value node: neither trivia nor a
// structural punctuation token.
func isSignificant(n Node) bool {
	return !isTrivia(n) && !isStructuralToken(n)
}

// renderText concatenates every descendant leaf's text in left-to-right
// depth-first order. It is O(total text length): a single builder is
// threaded through the whole subtree rather than each container
// allocating an intermediate string.
func renderText(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	if _, ok := n.(containerNode); ok {
		for _, c := range n.Children() {
			writeText(b, c)
		}
		return
	}
	b.WriteString(n.Text())
}

// appendChild appends child to parent's children slice, wiring its parent
// back-reference and child index. It is the only way the parser and
// mutation engine grow a container's children, keeping the three fields
// in sync in one place.
func appendChild(parent containerNode, child Node) {
	slice := parent.childSlice()
	a := child.(attacher)
	a.setParent(parent)
	a.setChildIndex(len(*slice))
	*slice = append(*slice, child)
}

func appendChildren(parent containerNode, children []Node) {
	for _, c := range children {
		appendChild(parent, c)
	}
}

// Walk traverses the subtree rooted at n in pre-order. The visitor
// returns false to stop the walk early.
func Walk(n Node, visitor func(Node) bool) bool {
	if !visitor(n) {
		return false
	}
	for _, c := range n.Children() {
		if !Walk(c, visitor) {
			return false
		}
	}
	return true
}

// FindAll returns every node in the subtree rooted at n, in pre-order,
// for which pred returns true.
func FindAll(n Node, pred func(Node) bool) []Node {
	var out []Node
	Walk(n, func(cur Node) bool {
		if pred(cur) {
			out = append(out, cur)
		}
		return true
	})
	return out
}
