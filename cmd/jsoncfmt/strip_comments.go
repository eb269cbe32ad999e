package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maurice/jsonc"
)

func newStripCommentsCmd(cfg *logConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip-comments [file]",
		Short: "Remove every comment from a document, preserving all other formatting",
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

			comments := jsonc.FindAll(root, func(n jsonc.Node) bool {
				return n.Kind() == jsonc.KindLineComment || n.Kind() == jsonc.KindBlockComment
			})
			for _, c := range comments {
				if err := jsonc.Remove(c); err != nil {
					return err
				}
			}
			logger.Info("stripped comments", "count", len(comments))

			_, err = fmt.Fprint(cmd.OutOrStdout(), root.Text())
			return err
		},
	}
	return cmd
}
