package jsonc

import (
	"math"
	"strconv"
)

// RawToken wraps already-formed JSONC source text so it can be inserted
// verbatim by a mutation, re-parsed with DefaultOptions rather than
// converted from a host value. Use this when the caller already has
// formatted text (for example, text round-tripped from another document)
// and wants it spliced in byte-for-byte.
type RawToken string

// Entry is a single key/value pair for a mapping value argument that must
// preserve its insertion order — the Go equivalent of spec.md's "mapping
// from strings to values", since a plain map[string]any has no stable
// iteration order.
type Entry struct {
	Key   string
	Value any
}

// --- Format inference ---

// singleIndentText returns the indentation unit observed anywhere in the
// document, defaulting to two spaces when none is found.
func singleIndentText(root *Root) string {
	indent := ""
	Walk(root, func(n Node) bool {
		if indent != "" {
			return false
		}
		if ws, ok := n.(*WhitespaceNode); ok {
			if prevIsNewline(ws) {
				indent = ws.Text()
				return false
			}
		}
		return true
	})
	if indent == "" {
		return "  "
	}
	return indent
}

func prevIsNewline(n Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	siblings := parent.Children()
	idx := n.ChildIndex()
	if idx <= 0 || idx > len(siblings) {
		return false
	}
	_, ok := siblings[idx-1].(*NewlineNode)
	return ok
}

// newlineKind returns "\r\n" if any CRLF newline appears in the document,
// else "\n".
func newlineKind(root *Root) string {
	kind := "\n"
	Walk(root, func(n Node) bool {
		if nl, ok := n.(*NewlineNode); ok {
			if nl.Text() == "\r\n" {
				kind = "\r\n"
				return false
			}
		}
		return true
	})
	return kind
}

// isMultiline reports whether any significant child of container is
// preceded by a newline.
func isMultiline(container containerNode) bool {
	children := container.Children()
	for i, c := range children {
		if !isSignificant(c) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if _, ok := children[j].(*NewlineNode); ok {
				return true
			}
			if isSignificant(children[j]) || isStructuralToken(children[j]) {
				break
			}
		}
	}
	return false
}

// containerDepth counts Object/Array ancestors of n, used to compute
// indentation for a freshly inserted child.
func containerDepth(n Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.(type) {
		case *Object, *Array:
			depth++
		}
	}
	return depth
}

// depthOf is the container-depth a freshly synthesized node will carry
// once spliced in directly under parent. Object and Array parents count
// toward depth themselves; Root and ObjectProperty don't, since neither
// opens a bracketed nesting level on its own.
func depthOf(parent Node) int {
	d := containerDepth(parent)
	switch parent.(type) {
	case *Object, *Array:
		d++
	}
	return d
}

// formatTarget returns n's document's inferred newline kind and indent
// unit, falling back to "\n" and two spaces when n isn't attached to a
// parsed document yet.
func formatTarget(n Node) (nl string, indent string) {
	root := RootNode(n)
	if root == nil {
		return "\n", "  "
	}
	return newlineKind(root), singleIndentText(root)
}

// --- Value argument conversion ---

// valueToNode converts a host value (or RawToken) into a freshly
// synthesized subtree. depth is the container-depth the node will carry
// once attached (see depthOf); nl and indent are the target document's
// detected formatting, threaded down so a nested mapping matches the
// surrounding document's style rather than reinventing its own.
func valueToNode(v any, depth int, nl, indent string) (Node, error) {
	switch val := v.(type) {
	case RawToken:
		root, err := parseWithOptions(string(val), DefaultOptions())
		if err != nil {
			return nil, err
		}
		if root.Value() == nil {
			return nil, newConversionError("raw token value is empty")
		}
		return root.Value(), nil
	case nil:
		return newNull(), nil
	case bool:
		return newBoolean(strconv.FormatBool(val)), nil
	case string:
		return newString(encodeString(val)), nil
	case int:
		return newNumber(strconv.Itoa(val)), nil
	case int64:
		return newNumber(strconv.FormatInt(val, 10)), nil
	case float64:
		text, err := formatFloat(val)
		if err != nil {
			return nil, err
		}
		return newNumber(text), nil
	case []any:
		return sequenceToArray(val, depth, nl, indent)
	case []Entry:
		return mappingToObject(val, depth, nl, indent)
	case *OrderedMap:
		return mappingToObject(val.Entries(), depth, nl, indent)
	default:
		return nil, newConversionError("unsupported value type %T", v)
	}
}

func formatFloat(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", newConversionError("%v has no JSON number representation", v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

// sequenceToArray synthesizes a single-line array: [e1, e2, e3]. Arrays
// built from host data stay compact regardless of the surrounding
// document's own formatting; call EnsureMultiline afterward to reshape
// one.
func sequenceToArray(items []any, depth int, nl, indent string) (*Array, error) {
	arr := &Array{baseNode: baseNode{kind: KindArray}}
	appendChild(arr, newToken(KindLBracket, "["))
	for i, item := range items {
		val, err := valueToNode(item, depth+1, nl, indent)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			appendChild(arr, newToken(KindComma, ","))
			appendChild(arr, newWhitespace(" "))
		}
		appendChild(arr, val)
	}
	appendChild(arr, newToken(KindRBracket, "]"))
	return arr, nil
}

// mappingToObject synthesizes an object. A non-empty mapping is always
// rendered multiline, indented to match depth against the surrounding
// document, the same way a host-authored config object reads as nested
// structure rather than a single packed line; an empty mapping stays
// "{}".
func mappingToObject(entries []Entry, depth int, nl, indent string) (*Object, error) {
	obj := &Object{baseNode: baseNode{kind: KindObject}}
	appendChild(obj, newToken(KindLBrace, "{"))
	if len(entries) == 0 {
		appendChild(obj, newToken(KindRBrace, "}"))
		return obj, nil
	}
	for i, e := range entries {
		appendChild(obj, newNewline(nl))
		appendChildren(obj, repeatIndent(indent, depth+1))

		prop := &ObjectProperty{baseNode: baseNode{kind: KindObjectProperty}}
		name := newString(encodeString(e.Key))
		appendChild(prop, name)
		prop.name = name
		appendChild(prop, newToken(KindColon, ":"))
		appendChild(prop, newWhitespace(" "))
		val, err := valueToNode(e.Value, depth+1, nl, indent)
		if err != nil {
			return nil, err
		}
		appendChild(prop, val)
		prop.value = val

		appendChild(obj, prop)
		if i < len(entries)-1 {
			appendChild(obj, newToken(KindComma, ","))
		}
	}
	appendChild(obj, newNewline(nl))
	appendChildren(obj, repeatIndent(indent, depth))
	appendChild(obj, newToken(KindRBrace, "}"))
	return obj, nil
}

// --- Generic splice helpers ---

// spliceChildren removes count children starting at start and inserts
// insert in their place, reindexing childIndex on every child that shifts
// and wiring parent/detached state on both the removed and inserted
// nodes. A node that appears in both the removed range and insert stays
// attached.
func spliceChildren(container containerNode, start, count int, insert ...Node) {
	slice := container.childSlice()
	removed := (*slice)[start : start+count]
	reinserted := make(map[Node]bool, len(insert))
	for _, n := range insert {
		reinserted[n] = true
	}
	for _, r := range removed {
		if reinserted[r] {
			continue
		}
		a := r.(attacher)
		a.setParent(nil)
		a.setDetached()
	}

	tail := append([]Node{}, (*slice)[start+count:]...)
	*slice = (*slice)[:start]
	for _, n := range insert {
		a := n.(attacher)
		a.setParent(container)
		*slice = append(*slice, n)
	}
	*slice = append(*slice, tail...)

	for i := start; i < len(*slice); i++ {
		(*slice)[i].(attacher).setChildIndex(i)
	}
}

// requireAttached rejects a mutation on n itself once n has been removed
// from a tree: a detached container can still syntactically hold an
// Insert/Append/SetValue call, but acting on it would build a subtree
// nobody can ever see.
func requireAttached(n Node) error {
	if a, ok := n.(attacher); ok && a.isDetached() {
		return newStateError("operation on a detached %s", n.Kind())
	}
	return nil
}

// --- Any-node operations ---

// ReplaceWith swaps n's bytes/children for replacement's, without
// disturbing surrounding separators or trivia. replacement inherits n's
// childIndex and parent link; n transitions to Detached.
func ReplaceWith(n Node, replacement any) (Node, error) {
	parent := n.Parent()
	if parent == nil {
		return nil, newStateError("cannot replace a detached node")
	}
	container, ok := parent.(containerNode)
	if !ok {
		return nil, newStateError("parent does not support replacement")
	}
	nl, indent := formatTarget(parent)
	newNode, err := valueToNode(replacement, depthOf(parent), nl, indent)
	if err != nil {
		return nil, err
	}
	idx := n.ChildIndex()
	spliceChildren(container, idx, 1, newNode)
	syncCachedValue(parent, n, newNode)
	return newNode, nil
}

// syncCachedValue keeps the Value() field that *Root and *ObjectProperty
// cache alongside their children slice consistent after a generic
// splice-based replacement swaps out their value child — spliceChildren
// only knows about the children slice, not these typed convenience
// fields.
func syncCachedValue(parent Node, old, replacement Node) {
	switch p := parent.(type) {
	case *Root:
		if p.value == old {
			p.value = replacement
		}
	case *ObjectProperty:
		if p.value == old {
			p.value = replacement
		}
	}
}

// Remove detaches n from its parent. If n is a significant value, the
// adjacent separator comma and the contiguous intra-separator trivia
// (whitespace up to and including one newline) are removed with it; a
// trailing same-line comment moves with the removed node, while comments
// on preceding lines stay with the remaining neighbors.
func Remove(n Node) error {
	parent := n.Parent()
	if parent == nil {
		return newStateError("cannot remove an already-detached node")
	}
	container, ok := parent.(containerNode)
	if !ok {
		return newStateError("parent does not support removal")
	}
	if !isSignificant(n) {
		spliceChildren(container, n.ChildIndex(), 1)
		return nil
	}
	removeSignificantChild(container, n.ChildIndex())
	return nil
}

// removeSignificantChild removes the significant child at idx along with
// its adjacent comma and the trivia that separated it from a neighbor: a
// same-line trailing comment and separator comma moving with it forward,
// up to and including one newline, and its own lead-in whitespace (which
// belongs only to its line) moving with it backward. If no comma is found
// forward — idx was the last significant child — a preceding comma and
// its lead-in trivia are absorbed instead.
func removeSignificantChild(container containerNode, idx int) {
	slice := *container.childSlice()

	end := idx + 1
	hasComma := false
	for end < len(slice) {
		switch slice[end].Kind() {
		case KindComma:
			hasComma = true
			end++
		case KindWhitespace, KindLineComment, KindBlockComment:
			end++
		case KindNewline:
			end++
			goto doneForward
		default:
			goto doneForward
		}
	}
doneForward:

	start := idx
	for start > 0 && slice[start-1].Kind() == KindWhitespace {
		start--
	}

	if !hasComma {
		for start > 0 {
			switch slice[start-1].Kind() {
			case KindComma:
				start--
				hasComma = true
			case KindWhitespace, KindNewline:
				start--
				continue
			}
			break
		}
	}

	spliceChildren(container, start, end-start)
}

// AsObjectOrForce returns n coerced to *Object: if n is already an
// *Object, it is returned unchanged; otherwise it is replaced in-place by
// a freshly synthesized empty Object, detaching the old node.
func AsObjectOrForce(n Node) (*Object, error) {
	if obj, ok := n.(*Object); ok {
		return obj, nil
	}
	parent := n.Parent()
	if parent == nil {
		return nil, newStateError("cannot force-coerce a detached node")
	}
	container, ok := parent.(containerNode)
	if !ok {
		return nil, newStateError("parent does not support replacement")
	}
	obj := &Object{baseNode: baseNode{kind: KindObject}}
	appendChild(obj, newToken(KindLBrace, "{"))
	appendChild(obj, newToken(KindRBrace, "}"))
	spliceChildren(container, n.ChildIndex(), 1, obj)
	syncCachedValue(parent, n, obj)
	return obj, nil
}

// AsArrayOrForce returns n coerced to *Array: if n is already an *Array,
// it is returned unchanged; otherwise it is replaced in-place by a
// freshly synthesized empty Array, detaching the old node.
func AsArrayOrForce(n Node) (*Array, error) {
	if arr, ok := n.(*Array); ok {
		return arr, nil
	}
	parent := n.Parent()
	if parent == nil {
		return nil, newStateError("cannot force-coerce a detached node")
	}
	container, ok := parent.(containerNode)
	if !ok {
		return nil, newStateError("parent does not support replacement")
	}
	arr := &Array{baseNode: baseNode{kind: KindArray}}
	appendChild(arr, newToken(KindLBracket, "["))
	appendChild(arr, newToken(KindRBracket, "]"))
	spliceChildren(container, n.ChildIndex(), 1, arr)
	syncCachedValue(parent, n, arr)
	return arr, nil
}

// Clone returns a deep, detached copy of the subtree rooted at n. The
// copy shares no state with n; mutating one never affects the other.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Root:
		c := &Root{baseNode: baseNode{kind: KindRoot}}
		for _, child := range v.children {
			cc := Clone(child)
			appendChild(c, cc)
			if child == v.value {
				c.value = cc
			}
		}
		return c
	case *Object:
		c := &Object{baseNode: baseNode{kind: KindObject}}
		for _, child := range v.children {
			appendChild(c, Clone(child))
		}
		return c
	case *Array:
		c := &Array{baseNode: baseNode{kind: KindArray}}
		for _, child := range v.children {
			appendChild(c, Clone(child))
		}
		return c
	case *ObjectProperty:
		c := &ObjectProperty{baseNode: baseNode{kind: KindObjectProperty}}
		for _, child := range v.children {
			cc := Clone(child)
			appendChild(c, cc)
			if child == v.name {
				c.name = cc
			}
			if child == v.value {
				c.value = cc
			}
		}
		return c
	default:
		return cloneLeaf(n)
	}
}

func cloneLeaf(n Node) Node {
	switch n.(type) {
	case *StringNode:
		return newString(n.Text())
	case *NumberNode:
		return newNumber(n.Text())
	case *BooleanNode:
		return newBoolean(n.Text())
	case *NullNode:
		return newNull()
	case *WordNode:
		return newWord(n.Text())
	case *WhitespaceNode:
		return newWhitespace(n.Text())
	case *NewlineNode:
		return newNewline(n.Text())
	case *LineCommentNode:
		return newLineComment(n.Text())
	case *BlockCommentNode:
		return newBlockComment(n.Text())
	default:
		return newToken(n.Kind(), n.Text())
	}
}

// --- Root mutation ---

// SetValue replaces the document's single value, synthesizing one if the
// document was empty.
func (r *Root) SetValue(v any) error {
	nl, indent := formatTarget(r)
	newNode, err := valueToNode(v, depthOf(r), nl, indent)
	if err != nil {
		return err
	}
	if r.value == nil {
		appendChild(r, newNode)
		r.value = newNode
		return nil
	}
	idx := r.value.ChildIndex()
	spliceChildren(r, idx, 1, newNode)
	r.value = newNode
	return nil
}

// ClearChildren empties the document, leaving no value and no trivia.
func (r *Root) ClearChildren() {
	for _, c := range r.children {
		a := c.(attacher)
		a.setParent(nil)
		a.setDetached()
	}
	r.children = nil
	r.value = nil
}

// --- Object mutation ---

// Append adds a new property (key: value) to the end of the object,
// matching the object's existing single-line/multiline formatting.
func (o *Object) Append(key string, value any) (*ObjectProperty, error) {
	return o.Insert(len(o.Properties()), key, value)
}

// Insert adds a new property at position index among the object's
// significant properties (0 is first, len(Properties()) appends).
func (o *Object) Insert(index int, key string, value any) (*ObjectProperty, error) {
	if err := requireAttached(o); err != nil {
		return nil, err
	}
	props := o.Properties()
	if index < 0 || index > len(props) {
		return nil, newStateError("insert index %d out of range [0, %d]", index, len(props))
	}

	multiline := isMultiline(o)
	nl, indent := formatTarget(o)
	depth := containerDepth(o) + 1

	val, err := valueToNode(value, depth, nl, indent)
	if err != nil {
		return nil, err
	}
	prop := &ObjectProperty{baseNode: baseNode{kind: KindObjectProperty}}
	name := newString(encodeString(key))
	appendChild(prop, name)
	prop.name = name
	appendChild(prop, newToken(KindColon, ":"))
	appendChild(prop, newWhitespace(" "))
	appendChild(prop, val)
	prop.value = val

	leadTrivia := func() []Node {
		if !multiline {
			return nil
		}
		trivia := []Node{newNewline(nl)}
		return append(trivia, repeatIndent(indent, depth)...)
	}

	if index == len(props) {
		insertTail(o, prop, multiline, nl, indent, depth)
		return prop, nil
	}

	target := props[index]
	pos := target.ChildIndex()
	// target already has a lead-in (the trivia directly before pos), so
	// the new node inherits it unchanged; what's missing is a fresh
	// separator between the new node and the target it displaced.
	insert := []Node{prop, newToken(KindComma, ",")}
	if multiline {
		insert = append(insert, leadTrivia()...)
	} else {
		insert = append(insert, newWhitespace(" "))
	}
	spliceChildren(o, pos, 0, insert...)
	return prop, nil
}

// insertTail appends a new significant child to container, inserting a
// separating comma after the previous last significant child if one is
// missing. A trailing same-line comment that already follows the old
// last child stays right where it is — the new comma lands before it,
// and the new child's own lead-in reuses that comment's trailing
// newline instead of opening a blank line below it — and a fresh newline
// is appended after the new child so the closing token keeps its own
// line and its existing indent. Only when the closing token sat on the
// old last child's line is a closing indent synthesized for it.
func insertTail(container containerNode, child Node, multiline bool, nl, indent string, depth int) {
	slice := *container.childSlice()
	closeIdx := len(slice) - 1 // closing brace/bracket

	lastSigIdx := -1
	for i := closeIdx - 1; i >= 0; i-- {
		if isSignificant(slice[i]) {
			lastSigIdx = i
			break
		}
	}

	if lastSigIdx == -1 {
		// container was empty.
		var insert []Node
		if multiline {
			insert = append(insert, newNewline(nl))
			insert = append(insert, repeatIndent(indent, depth)...)
		}
		insert = append(insert, child)
		if multiline {
			insert = append(insert, newNewline(nl))
			insert = append(insert, repeatIndent(indent, depth-1)...)
		}
		spliceChildren(container, closeIdx, 0, insert...)
		return
	}

	// Consume any trivia/comma that already trails the old last child, up
	// to and including its first newline, which keeps a same-line
	// trailing comment attached to that child's line.
	end := lastSigIdx + 1
	hasComma := false
	hadNewline := false
	for end < closeIdx {
		switch slice[end].Kind() {
		case KindComma:
			hasComma = true
			end++
		case KindWhitespace, KindLineComment, KindBlockComment:
			end++
		case KindNewline:
			end++
			hadNewline = true
			goto scanned
		default:
			goto scanned
		}
	}
scanned:

	insertAt := lastSigIdx + 1
	if !hasComma {
		spliceChildren(container, insertAt, 0, newToken(KindComma, ","))
		end++
	}

	var insert []Node
	if multiline {
		if !hadNewline {
			insert = append(insert, newNewline(nl))
		}
		insert = append(insert, repeatIndent(indent, depth)...)
		insert = append(insert, child)
		insert = append(insert, newNewline(nl))
		if !hadNewline {
			insert = append(insert, repeatIndent(indent, depth-1)...)
		}
	} else {
		insert = append(insert, newWhitespace(" "), child)
	}

	spliceChildren(container, end, 0, insert...)
}

// Get returns the value of the first property whose name decodes to key.
func (o *Object) Get(key string) (Node, bool) {
	for _, p := range o.Properties() {
		if propertyKeyEquals(p, key) {
			return p.Value(), true
		}
	}
	return nil, false
}

// GetOrThrow returns the value of the first property named key, or a
// TypeError if no such property exists.
func (o *Object) GetOrThrow(key string) (Node, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, newTypeError("no property named %q", key)
	}
	return v, nil
}

// GetIfObject returns the value of the property named key if it exists
// and is an Object.
func (o *Object) GetIfObject(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// GetIfObjectOrThrow is GetIfObject, raising TypeError when the property
// is missing or not an Object.
func (o *Object) GetIfObjectOrThrow(key string) (*Object, error) {
	obj, ok := o.GetIfObject(key)
	if !ok {
		return nil, newTypeError("property %q is not an object", key)
	}
	return obj, nil
}

// GetIfObjectOrForce returns the property's value coerced to an Object,
// creating the property with an empty Object value if key is absent.
func (o *Object) GetIfObjectOrForce(key string) (*Object, error) {
	v, ok := o.Get(key)
	if !ok {
		prop, err := o.Append(key, []Entry{})
		if err != nil {
			return nil, err
		}
		return prop.Value().(*Object), nil
	}
	return AsObjectOrForce(v)
}

// GetIfArray returns the value of the property named key if it exists
// and is an Array.
func (o *Object) GetIfArray(key string) (*Array, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.(*Array)
	return arr, ok
}

// GetIfArrayOrThrow is GetIfArray, raising TypeError when the property is
// missing or not an Array.
func (o *Object) GetIfArrayOrThrow(key string) (*Array, error) {
	arr, ok := o.GetIfArray(key)
	if !ok {
		return nil, newTypeError("property %q is not an array", key)
	}
	return arr, nil
}

// GetIfArrayOrForce returns the property's value coerced to an Array,
// creating the property with an empty Array value if key is absent.
func (o *Object) GetIfArrayOrForce(key string) (*Array, error) {
	v, ok := o.Get(key)
	if !ok {
		prop, err := o.Append(key, []any{})
		if err != nil {
			return nil, err
		}
		return prop.Value().(*Array), nil
	}
	return AsArrayOrForce(v)
}

func propertyKeyEquals(p *ObjectProperty, key string) bool {
	name := p.Name()
	if name == nil {
		return false
	}
	decoded, err := decodeName(name)
	if err != nil {
		return false
	}
	return decoded == key
}

// --- Array mutation ---

// Append adds value to the end of the array, matching its existing
// single-line/multiline formatting.
func (a *Array) Append(value any) (Node, error) {
	return a.Insert(len(a.Elements()), value)
}

// Insert adds value at position index among the array's significant
// elements (0 is first, len(Elements()) appends).
func (a *Array) Insert(index int, value any) (Node, error) {
	if err := requireAttached(a); err != nil {
		return nil, err
	}
	elems := a.Elements()
	if index < 0 || index > len(elems) {
		return nil, newStateError("insert index %d out of range [0, %d]", index, len(elems))
	}

	multiline := isMultiline(a)
	nl, indent := formatTarget(a)
	depth := containerDepth(a) + 1

	val, err := valueToNode(value, depth, nl, indent)
	if err != nil {
		return nil, err
	}

	leadTrivia := func() []Node {
		if !multiline {
			return nil
		}
		trivia := []Node{newNewline(nl)}
		return append(trivia, repeatIndent(indent, depth)...)
	}

	if index == len(elems) {
		insertTail(a, val, multiline, nl, indent, depth)
		return val, nil
	}

	target := elems[index]
	pos := target.ChildIndex()
	// target already has a lead-in (the trivia directly before pos), so
	// the new node inherits it unchanged; what's missing is a fresh
	// separator between the new node and the target it displaced.
	insert := []Node{val, newToken(KindComma, ",")}
	if multiline {
		insert = append(insert, leadTrivia()...)
	} else {
		insert = append(insert, newWhitespace(" "))
	}
	spliceChildren(a, pos, 0, insert...)
	return val, nil
}

// SetTrailingCommas adds or removes a trailing comma after the array's
// last significant element, but only while the array is multiline —
// single-line arrays never get one.
func (a *Array) SetTrailingCommas(want bool) error {
	return setTrailingCommas(a, want)
}

// SetTrailingCommas adds or removes a trailing comma after the object's
// last significant property, but only while the object is multiline.
func (o *Object) SetTrailingCommas(want bool) error {
	return setTrailingCommas(o, want)
}

func setTrailingCommas(container containerNode, want bool) error {
	if err := requireAttached(container); err != nil {
		return err
	}
	if !isMultiline(container) {
		return nil
	}
	slice := *container.childSlice()
	closeIdx := len(slice) - 1
	lastSigIdx := -1
	for i := closeIdx - 1; i >= 0; i-- {
		if isSignificant(slice[i]) {
			lastSigIdx = i
			break
		}
	}
	if lastSigIdx == -1 {
		return nil
	}
	commaIdx := -1
	for i := lastSigIdx + 1; i < closeIdx; i++ {
		if slice[i].Kind() == KindComma {
			commaIdx = i
			break
		}
	}
	switch {
	case want && commaIdx == -1:
		spliceChildren(container, lastSigIdx+1, 0, newToken(KindComma, ","))
	case !want && commaIdx != -1:
		spliceChildren(container, commaIdx, 1)
	}
	return nil
}

// EnsureMultiline converts a single-line array to a multiline one,
// inserting newlines and indentation between its significant children.
func (a *Array) EnsureMultiline() error {
	return ensureMultiline(a)
}

// EnsureMultiline converts a single-line object to a multiline one,
// inserting newlines and indentation between its significant children.
func (o *Object) EnsureMultiline() error {
	return ensureMultiline(o)
}

func ensureMultiline(container containerNode) error {
	if err := requireAttached(container); err != nil {
		return err
	}
	if isMultiline(container) {
		return nil
	}
	nl, indent := formatTarget(container)
	depth := containerDepth(container) + 1

	slice := *container.childSlice()
	var rebuilt []Node
	rebuilt = append(rebuilt, slice[0]) // opening token

	indentTrivia := func() []Node {
		var trivia []Node
		trivia = append(trivia, newNewline(nl))
		for i := 0; i < depth; i++ {
			trivia = append(trivia, newWhitespace(indent))
		}
		return trivia
	}

	i := 1
	for i < len(slice)-1 {
		c := slice[i]
		if _, ok := c.(*WhitespaceNode); ok {
			i++
			continue
		}
		rebuilt = append(rebuilt, indentTrivia()...)
		rebuilt = append(rebuilt, c)
		i++
		if i < len(slice)-1 && slice[i].Kind() == KindComma {
			rebuilt = append(rebuilt, slice[i])
			i++
		}
	}
	closingIndent := append([]Node{newNewline(nl)}, repeatIndent(indent, depth-1)...)
	rebuilt = append(rebuilt, closingIndent...)
	rebuilt = append(rebuilt, slice[len(slice)-1]) // closing token

	spliceChildren(container, 0, len(slice), rebuilt...)
	return nil
}

func repeatIndent(unit string, n int) []Node {
	if n <= 0 {
		return nil
	}
	out := make([]Node, n)
	for i := range out {
		out[i] = newWhitespace(unit)
	}
	return out
}

// --- ObjectProperty mutation ---

// SetValue replaces the property's value in place.
func (p *ObjectProperty) SetValue(v any) error {
	if err := requireAttached(p); err != nil {
		return err
	}
	nl, indent := formatTarget(p)
	newNode, err := valueToNode(v, depthOf(p), nl, indent)
	if err != nil {
		return err
	}
	idx := p.value.ChildIndex()
	spliceChildren(p, idx, 1, newNode)
	p.value = newNode
	return nil
}

// Remove detaches this property from its owning object, including its
// separating comma and trivia, per the package-level Remove rules.
func (p *ObjectProperty) Remove() error {
	return Remove(p)
}

// ValueIfObject returns the property's value if it is an Object.
func (p *ObjectProperty) ValueIfObject() (*Object, bool) {
	obj, ok := p.value.(*Object)
	return obj, ok
}

// ValueIfArray returns the property's value if it is an Array.
func (p *ObjectProperty) ValueIfArray() (*Array, bool) {
	arr, ok := p.value.(*Array)
	return arr, ok
}

// ValueIfObjectOrForce coerces the property's value to an Object,
// replacing it in place if it is not already one.
func (p *ObjectProperty) ValueIfObjectOrForce() (*Object, error) {
	obj, err := AsObjectOrForce(p.value)
	if err != nil {
		return nil, err
	}
	p.value = obj
	return obj, nil
}

// ValueIfArrayOrForce coerces the property's value to an Array, replacing
// it in place if it is not already one.
func (p *ObjectProperty) ValueIfArrayOrForce() (*Array, error) {
	arr, err := AsArrayOrForce(p.value)
	if err != nil {
		return nil, err
	}
	p.value = arr
	return arr, nil
}
