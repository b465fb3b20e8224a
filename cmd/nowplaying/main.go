package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/nowplaying/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "nowplaying",
		Short:         "Show what a Discord user is playing on Spotify, via Lanyard",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/nowplaying/config.toml)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "prefs file holding the Discord ID and theme")
	root.PersistentFlags().DurationVar(&opts.PollEvery, "poll", 0, "poll interval, e.g. 2s (default from config, 1s)")

	root.AddCommand(newConfigureCmd(&opts))
	root.AddCommand(newResetCmd(&opts))
	root.AddCommand(newStatusCmd(&opts))
	root.AddCommand(newWatchCmd(&opts))
	root.AddCommand(newLogsCmd(&opts))
	return root
}

func newConfigureCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "configure [discord-id]",
		Short: "Validate and save the Discord ID to follow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				var err error
				id, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter your Discord ID: ")
				if err != nil {
					return err
				}
				if id == "" {
					// Nothing entered; leave the current ID alone.
					return nil
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := app.Configure(ctx, *opts, id); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Discord ID validated successfully!")
			return nil
		},
	}
}

func newResetCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved Discord ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Reset(*opts); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Discord ID cleared")
			return nil
		},
	}
}

func newStatusCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current track once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Status(cmd.Context(), *opts, cmd.OutOrStdout())
		},
	}
}

func newWatchCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream render signals as JSON lines and read intents from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Watch(cmd.Context(), *opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(*opts, lines, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to show")
	return cmd
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read discord id: %w", err)
	}
	return strings.TrimSpace(line), nil
}
