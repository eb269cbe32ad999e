package jsonc_test

import (
	"fmt"

	"github.com/maurice/jsonc"
)

func ExampleParse() {
	root, err := jsonc.Parse([]byte(`{"name": "Alice"}`))
	if err != nil {
		panic(err)
	}
	obj := root.Value().(*jsonc.Object)
	v, _ := obj.Get("name")
	fmt.Println(v.(*jsonc.StringNode).Text())
	// Output:
	// "Alice"
}

func ExampleRoot_Text() {
	input := "{\n  // leading comment\n  \"a\": 1,\n}\n"
	root, _ := jsonc.Parse([]byte(input))
	fmt.Print(root.Text())
	// Output:
	// {
	//   // leading comment
	//   "a": 1,
	// }
}

// ExampleObject_Append shows that adding a property to an already
// multiline object preserves the document's existing indentation and
// comments, per the preserve-and-add scenario.
func ExampleObject_Append() {
	input := "{\n  \"a\": 1\n}"
	root, _ := jsonc.Parse([]byte(input))
	obj := root.Value().(*jsonc.Object)
	obj.Append("b", int64(2))
	fmt.Print(root.Text())
	// Output:
	// {
	//   "a": 1,
	//   "b": 2
	// }
}

// ExampleAsObjectOrForce shows forcing a scalar property into an object
// in place, leaving the old node detached.
func ExampleAsObjectOrForce() {
	root, _ := jsonc.Parse([]byte(`{"a": 1}`))
	obj := root.Value().(*jsonc.Object)
	v, _ := obj.Get("a")
	forced, _ := jsonc.AsObjectOrForce(v)
	forced.Append("nested", true)
	fmt.Print(root.Text())
	// Output:
	// {"a": {"nested": true}}
}

// ExampleParseStrict shows that extensions rejected by strict parsing
// produce a SyntaxError.
func ExampleParseStrict() {
	_, err := jsonc.ParseStrict([]byte(`{"a": 1,}`))
	fmt.Println(err != nil)
	// Output:
	// true
}

// ExampleArray_SetTrailingCommas shows the trailing-comma toggle
// affecting only a multiline container.
func ExampleArray_SetTrailingCommas() {
	root, _ := jsonc.Parse([]byte("[\n  1,\n  2\n]"))
	arr := root.Value().(*jsonc.Array)
	arr.SetTrailingCommas(true)
	fmt.Print(root.Text())
	// Output:
	// [
	//   1,
	//   2,
	// ]
}

// ExampleObject_Insert shows format inference deriving the document's
// indent unit from an existing sibling.
func ExampleObject_Insert() {
	root, _ := jsonc.Parse([]byte("{\n    \"a\": 1\n}"))
	obj := root.Value().(*jsonc.Object)
	obj.Insert(0, "z", int64(0))
	fmt.Print(root.Text())
	// Output:
	// {
	//     "z": 0,
	//     "a": 1
	// }
}

// ExampleToValue shows unicode round-tripping through the value bridge.
func ExampleToValue() {
	root, _ := jsonc.Parse([]byte(`{"greeting": "café"}`))
	v, _ := jsonc.ToValue(root)
	m := v.(*jsonc.OrderedMap)
	greeting, _ := m.Get("greeting")
	fmt.Println(greeting)
	// Output:
	// café
}

func ExampleRemove() {
	root, _ := jsonc.Parse([]byte("{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}"))
	obj := root.Value().(*jsonc.Object)
	v, _ := obj.Get("b")
	jsonc.Remove(v.Parent())
	fmt.Print(root.Text())
	// Output:
	// {
	//   "a": 1,
	//   "c": 3
	// }
}

func ExampleParseToValue() {
	v, _ := jsonc.ParseToValue([]byte(`[1, 2, 3]`))
	fmt.Println(v)
	// Output:
	// [1 2 3]
}
