package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// logConfig holds the CLI flag values for logger configuration: a level
// name and an output format. registerFlags wires these onto a
// *pflag.FlagSet (as cobra.Command.PersistentFlags() returns), and
// newLogger builds the *slog.Logger the rest of the command uses.
type logConfig struct {
	level  string
	format string
}

func (c *logConfig) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.level, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&c.format, "log-format", "text", "log format: text, json")
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func (c *logConfig) newHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := parseLevel(c.level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch c.format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.format)
	}
}

func (c *logConfig) newLogger() (*slog.Logger, error) {
	handler, err := c.newHandler(os.Stderr)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newRootCmd() *cobra.Command {
	cfg := &logConfig{}

	root := &cobra.Command{
		Use:           "jsoncfmt",
		Short:         "Read, format, query, and lint JSONC documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cfg.registerFlags(root.PersistentFlags())

	root.AddCommand(
		newFmtCmd(cfg),
		newValidateCmd(cfg),
		newGetCmd(cfg),
		newStripCommentsCmd(cfg),
		newLintCmd(cfg),
	)
	return root
}
