package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maurice/jsonc"
)

func newGetCmd(cfg *logConfig) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Print the value at a dotted path (a.b.2.c) as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cfg.newLogger()
			if err != nil {
				return err
			}

			data, err := readInput(args[1:])
			if err != nil {
				return err
			}

			root, err := jsonc.Parse(data)
			if err != nil {
				return err
			}

			node, err := navigatePath(root.Value(), strings.Split(args[0], "."))
			if err != nil {
				return err
			}
			logger.Debug("resolved path", "path", args[0])

			if raw {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), node.Text())
				return err
			}

			value, err := jsonc.ToValue(node)
			if err != nil {
				return err
			}
			encoded, err := json.Marshal(toPlainValue(value))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the matched node's source text instead of its JSON value")
	return cmd
}

func navigatePath(n jsonc.Node, segs []string) (jsonc.Node, error) {
	cur := n
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		if obj, ok := jsonc.AsObject(cur); ok {
			v, found := obj.Get(seg)
			if !found {
				return nil, fmt.Errorf("no property named %q", seg)
			}
			cur = v
			continue
		}
		if arr, ok := jsonc.AsArray(cur); ok {
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("expected an array index, got %q", seg)
			}
			elems := arr.Elements()
			if idx < 0 || idx >= len(elems) {
				return nil, fmt.Errorf("array index %d out of range [0, %d)", idx, len(elems))
			}
			cur = elems[idx]
			continue
		}
		return nil, fmt.Errorf("cannot descend into %s with segment %q", cur.Kind(), seg)
	}
	return cur, nil
}

// toPlainValue converts an *jsonc.OrderedMap (which encoding/json cannot
// marshal directly) into a plain map[string]any, recursively.
func toPlainValue(v any) any {
	switch val := v.(type) {
	case *jsonc.OrderedMap:
		m := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			m[k] = toPlainValue(child)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toPlainValue(e)
		}
		return out
	default:
		return val
	}
}
