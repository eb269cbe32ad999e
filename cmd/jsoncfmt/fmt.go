package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/maurice/jsonc"
)

func newFmtCmd(cfg *logConfig) *cobra.Command {
	var (
		multiline      bool
		trailingCommas bool
		strict         bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse and re-emit a JSONC document, optionally reshaping it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cfg.newLogger()
			if err != nil {
				return err
			}

			data, err := readInput(args)
			if err != nil {
				return err
			}

			var root *jsonc.Root
			if strict {
				root, err = jsonc.ParseStrict(data)
			} else {
				root, err = jsonc.Parse(data)
			}
			if err != nil {
				return err
			}
			logger.Debug("parsed document", "bytes", len(data))

			if multiline {
				if err := reshapeMultiline(root.Value()); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("trailing-commas") {
				if err := setTrailingCommasDeep(root.Value(), trailingCommas); err != nil {
					return err
				}
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), root.Text())
			return err
		},
	}

	cmd.Flags().BoolVar(&multiline, "multiline", false, "expand every object and array to multiline")
	cmd.Flags().BoolVar(&trailingCommas, "trailing-commas", true, "add or strip trailing commas in multiline containers")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject JSONC extensions, requiring plain JSON")

	return cmd
}

func reshapeMultiline(n jsonc.Node) error {
	switch v := n.(type) {
	case *jsonc.Object:
		if err := v.EnsureMultiline(); err != nil {
			return err
		}
		for _, p := range v.Properties() {
			if err := reshapeMultiline(p.Value()); err != nil {
				return err
			}
		}
	case *jsonc.Array:
		if err := v.EnsureMultiline(); err != nil {
			return err
		}
		for _, e := range v.Elements() {
			if err := reshapeMultiline(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func setTrailingCommasDeep(n jsonc.Node, want bool) error {
	switch v := n.(type) {
	case *jsonc.Object:
		if err := v.SetTrailingCommas(want); err != nil {
			return err
		}
		for _, p := range v.Properties() {
			if err := setTrailingCommasDeep(p.Value(), want); err != nil {
				return err
			}
		}
	case *jsonc.Array:
		if err := v.SetTrailingCommas(want); err != nil {
			return err
		}
		for _, e := range v.Elements() {
			if err := setTrailingCommasDeep(e, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
