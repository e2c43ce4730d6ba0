// Command xwinev logs window lifecycle events seen on the root window of an
// X11 display until interrupted.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AchrafSoltani/xwinev"
	"github.com/AchrafSoltani/xwinev/internal/config"
	"github.com/AchrafSoltani/xwinev/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(xwinev.DialX11, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(dial xwinev.DialFunc, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           "xwinev",
		Short:         "Log window lifecycle events on the X11 root window",
		Args:          noArgs(out),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), dial, config.Load(), out)
		},
	}
}

// noArgs rejects positional arguments with a FATAL ERROR line.
func noArgs(out io.Writer) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			logging.Fatal(logging.New(out)).Msg(err.Error())
			return err
		}
		return nil
	}
}

func run(ctx context.Context, dial xwinev.DialFunc, cfg *config.Config, out io.Writer) error {
	logger := logging.New(out)

	m, err := xwinev.Open(dial, cfg.Display, logger)
	if err != nil {
		logging.Fatal(logger).Msg(err.Error())
		return err
	}
	defer m.Close()

	if err := m.Run(ctx); err != nil {
		logging.Fatal(logger).Msg(err.Error())
		return err
	}
	return nil
}
