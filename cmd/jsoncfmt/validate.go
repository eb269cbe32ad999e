package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maurice/jsonc"
)

func newValidateCmd(cfg *logConfig) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a document parses, without printing it",
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

			if strict {
				_, err = jsonc.ParseStrict(data)
			} else {
				_, err = jsonc.Parse(data)
			}
			if err != nil {
				return err
			}

			logger.Info("document is valid", "bytes", len(data))
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject JSONC extensions, requiring plain JSON")
	return cmd
}
