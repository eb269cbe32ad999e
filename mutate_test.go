package jsonc

import "testing"

// --- spec.md §8 end-to-end scenarios ---

func TestScenario_PreserveAndAdd(t *testing.T) {
	input := "{\n  // 1\n  \"data\" /* 2 */: 123 // 3\n} // 4"
	root, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)

	data, err := obj.GetOrThrow("data")
	if err != nil {
		t.Fatal(err)
	}
	if err := data.Parent().(*ObjectProperty).SetValue([]Entry{{Key: "nested", Value: true}}); err != nil {
		t.Fatal(err)
	}
	if _, err := obj.Append("new_key", []any{int64(456), int64(789), false}); err != nil {
		t.Fatal(err)
	}

	want := "{\n  // 1\n  \"data\" /* 2 */: {\n    \"nested\": true\n  }, // 3\n  \"new_key\": [456, 789, false]\n} // 4"
	if got := root.Text(); got != want {
		t.Fatalf("Text() =\n%q\nwant\n%q", got, want)
	}
}

func TestScenario_ForceType_Object(t *testing.T) {
	root, err := Parse([]byte("null"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsObjectOrForce(root.Value()); err != nil {
		t.Fatal(err)
	}
	if got := root.Text(); got != "{}" {
		t.Fatalf("Text() = %q, want \"{}\"", got)
	}
}

func TestScenario_ForceType_Array(t *testing.T) {
	root, err := Parse([]byte("null"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsArrayOrForce(root.Value()); err != nil {
		t.Fatal(err)
	}
	if got := root.Text(); got != "[]" {
		t.Fatalf("Text() = %q, want \"[]\"", got)
	}
}

func TestScenario_StrictRejection(t *testing.T) {
	if _, err := ParseStrict([]byte("{ // c\n}")); err == nil {
		t.Fatal("want SyntaxError")
	}
	if _, err := ParseStrict([]byte("{ // c\n}"), WithComments(true)); err != nil {
		t.Fatalf("want success with AllowComments override, got %v", err)
	}
}

func TestScenario_TrailingCommaToggle(t *testing.T) {
	root, err := Parse([]byte("[\n  1,\n  2\n]"))
	if err != nil {
		t.Fatal(err)
	}
	arr := root.Value().(*Array)

	if err := arr.SetTrailingCommas(true); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), "[\n  1,\n  2,\n]"; got != want {
		t.Fatalf("after SetTrailingCommas(true): %q, want %q", got, want)
	}

	if err := arr.SetTrailingCommas(false); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), "[\n  1,\n  2\n]"; got != want {
		t.Fatalf("after SetTrailingCommas(false): %q, want %q", got, want)
	}
}

func TestScenario_IndentInference(t *testing.T) {
	root, err := Parse([]byte("{\n    \"a\": 1\n}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	if _, err := obj.Append("b", int64(2)); err != nil {
		t.Fatal(err)
	}
	want := "{\n    \"a\": 1,\n    \"b\": 2\n}"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

// --- Object.Insert / Append ---

func TestObject_Insert_AtFront(t *testing.T) {
	root, err := Parse([]byte("{\n    \"a\": 1\n}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	if _, err := obj.Insert(0, "z", int64(0)); err != nil {
		t.Fatal(err)
	}
	want := "{\n    \"z\": 0,\n    \"a\": 1\n}"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestObject_Append_SingleLine(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	if _, err := obj.Append("b", int64(2)); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), `{"a": 1, "b": 2}`; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestObject_Append_EmptyObject(t *testing.T) {
	root, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	if _, err := obj.Append("a", int64(1)); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), `{"a": 1}`; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestObject_Get_GetIfObject_GetIfArray(t *testing.T) {
	root, err := Parse([]byte(`{"obj": {"x": 1}, "arr": [1, 2], "num": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)

	if _, ok := obj.GetIfObject("obj"); !ok {
		t.Fatal("GetIfObject(\"obj\") = false, want true")
	}
	if _, ok := obj.GetIfObject("arr"); ok {
		t.Fatal("GetIfObject(\"arr\") = true, want false")
	}
	if _, ok := obj.GetIfArray("arr"); !ok {
		t.Fatal("GetIfArray(\"arr\") = false, want true")
	}
	if _, ok := obj.GetIfArray("num"); ok {
		t.Fatal("GetIfArray(\"num\") = true, want false")
	}
	if _, err := obj.GetOrThrow("missing"); err == nil {
		t.Fatal("GetOrThrow(\"missing\") want TypeError")
	}
}

func TestObject_GetIfObjectOrForce_CreatesMissing(t *testing.T) {
	root, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	nested, err := obj.GetIfObjectOrForce("section")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := nested.Append("k", int64(1)); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), `{"section": {"k": 1}}`; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestObject_GetIfObjectOrForce_CoercesExisting(t *testing.T) {
	root, err := Parse([]byte(`{"section": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	nested, err := obj.GetIfObjectOrForce("section")
	if err != nil {
		t.Fatal(err)
	}
	if nested.Kind() != KindObject {
		t.Fatalf("kind = %s, want Object", nested.Kind())
	}
	if got, want := root.Text(), `{"section": {}}`; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

// --- Array.Insert / Append ---

func TestArray_Insert_Middle(t *testing.T) {
	root, err := Parse([]byte("[1, 3]"))
	if err != nil {
		t.Fatal(err)
	}
	arr := root.Value().(*Array)
	if _, err := arr.Insert(1, int64(2)); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), "[1, 2, 3]"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestArray_Append_Multiline(t *testing.T) {
	root, err := Parse([]byte("[\n  1,\n  2\n]"))
	if err != nil {
		t.Fatal(err)
	}
	arr := root.Value().(*Array)
	if _, err := arr.Append(int64(3)); err != nil {
		t.Fatal(err)
	}
	want := "[\n  1,\n  2,\n  3\n]"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestArray_EnsureMultiline(t *testing.T) {
	root, err := Parse([]byte("[1, 2]"))
	if err != nil {
		t.Fatal(err)
	}
	arr := root.Value().(*Array)
	if err := arr.EnsureMultiline(); err != nil {
		t.Fatal(err)
	}
	want := "[\n  1,\n  2\n]"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

// --- Remove / comma discipline ---

func TestRemove_MiddleProperty(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	b, _ := obj.Get("b")
	if err := Remove(b.Parent()); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1,\n  \"c\": 3\n}"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestRemove_LastProperty(t *testing.T) {
	// Removing the last property absorbs its own trailing newline (there's
	// no following sibling to separate it from) and the preceding comma
	// plus the newline that led into it (the comma no longer separates
	// anything), so both adjacent newlines go with it.
	root, err := Parse([]byte("{\n  \"a\": 1,\n  \"b\": 2\n}"))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	b, _ := obj.Get("b")
	if err := Remove(b.Parent()); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1}"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestRemove_OnlyProperty(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	a, _ := obj.Get("a")
	if err := Remove(a.Parent()); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Text(), "{}"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestRemove_Detached_Errors(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	a, _ := obj.Get("a")
	prop := a.Parent()
	if err := Remove(prop); err != nil {
		t.Fatal(err)
	}
	if err := Remove(prop); err == nil {
		t.Fatal("Remove() on an already-detached node: want StateError")
	}
}

// --- ReplaceWith ---

func TestReplaceWith_PreservesSeparators(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1, "b": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	a, _ := obj.Get("a")
	if _, err := ReplaceWith(a, "hello"); err != nil {
		t.Fatal(err)
	}
	want := `{"a": "hello", "b": 2}`
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestReplaceWith_OldNodeDetached(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	a, _ := obj.Get("a")
	if _, err := ReplaceWith(a, int64(2)); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil {
		t.Fatal("old node should be detached after ReplaceWith")
	}
	if err := Remove(a); err == nil {
		t.Fatal("operating on the detached old handle: want StateError")
	}
}

// --- RawToken ---

func TestRawToken_InsertedVerbatim(t *testing.T) {
	root, err := Parse([]byte("[1, 2]"))
	if err != nil {
		t.Fatal(err)
	}
	arr := root.Value().(*Array)
	if _, err := arr.Append(RawToken("0x10")); err != nil {
		t.Fatal(err)
	}
	want := "[1, 2, 0x10]"
	if got := root.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

// --- Identity stability ---

func TestIdentity_StableAcrossUnrelatedMutation(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1, "b": 2, "nested": {"x": 1}}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	b, _ := obj.Get("b")
	wantIndex := b.Parent().ChildIndex()

	nested, _ := obj.GetIfObject("nested")
	if _, err := nested.Append("y", int64(2)); err != nil {
		t.Fatal(err)
	}

	if b.Parent().ChildIndex() != wantIndex {
		t.Fatalf("ChildIndex() of an untouched sibling changed: got %d, want %d", b.Parent().ChildIndex(), wantIndex)
	}
	if b.Parent().(*ObjectProperty).Parent() != Node(obj) {
		t.Fatal("untouched sibling's property lost its parent link")
	}
}

// --- Clone ---

func TestClone_IndependentOfOriginal(t *testing.T) {
	root, err := Parse([]byte(`{"a": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := root.Value().(*Object)
	a, _ := obj.Get("a")
	clone := Clone(a)

	if clone.Parent() != nil {
		t.Fatal("Clone() result should be detached (nil parent)")
	}
	if clone.Text() != a.Text() {
		t.Fatalf("clone text = %q, want %q", clone.Text(), a.Text())
	}

	if err := Remove(a.Parent()); err != nil {
		t.Fatal(err)
	}
	if clone.Text() != `[1, 2]` {
		t.Fatalf("clone mutated after original removed: %q", clone.Text())
	}
}

// --- Options.Merge ---

func TestOptionsMerge(t *testing.T) {
	base := StrictOptions()
	merged := base.Merge(WithComments(true), WithTrailingCommas(true))
	if !merged.AllowComments || !merged.AllowTrailingCommas {
		t.Fatal("Merge() did not apply overrides")
	}
	if merged.AllowHexadecimalNumbers {
		t.Fatal("Merge() should not enable fields the caller didn't override")
	}
}
