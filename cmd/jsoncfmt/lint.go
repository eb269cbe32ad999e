package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/maurice/jsonc"
)

// lintRule flags a formatting issue that does not prevent parsing but
// that a style-conscious document shouldn't have.
type lintRule struct {
	name  string
	check func(*jsonc.Root) error
}

var lintRules = []lintRule{
	{
		name: "no-tab-indent",
		check: func(root *jsonc.Root) error {
			var found error
			jsonc.Walk(root, func(n jsonc.Node) bool {
				if n.Kind() != jsonc.KindWhitespace || !containsTab(n.Text()) {
					return true
				}
				i := n.ChildIndex()
				if i > 0 && n.Parent().Children()[i-1].Kind() == jsonc.KindNewline {
					found = multierr.Append(found, fmt.Errorf("tab character found in indentation"))
				}
				return true
			})
			return found
		},
	},
	{
		name: "no-trailing-whitespace-before-newline",
		check: func(root *jsonc.Root) error {
			var found error
			jsonc.Walk(root, func(n jsonc.Node) bool {
				if n.Kind() != jsonc.KindWhitespace {
					return true
				}
				siblings := n.Parent().Children()
				i := n.ChildIndex()
				if i+1 < len(siblings) && siblings[i+1].Kind() == jsonc.KindNewline {
					found = multierr.Append(found, fmt.Errorf("trailing whitespace before newline"))
				}
				return true
			})
			return found
		},
	},
}

func containsTab(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			return true
		}
	}
	return false
}

func newLintCmd(cfg *logConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Check a document against a set of formatting rules",
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

			root, err := jsonc.Parse(data)
			if err != nil {
				return err
			}

			var errs error
			for _, rule := range lintRules {
				if err := rule.check(root); err != nil {
					logger.Warn("lint rule failed", "rule", rule.name)
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", rule.name, err))
				}
			}
			if errs != nil {
				return errs
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	return cmd
}
