package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type rootFlags struct {
	configPath         string
	prefsPath          string
	logLevel           string
	logFile            string
	noGlobalHotkey     bool
	writeDefaultConfig bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "autoclick",
		Short: "Click repeatedly at the mouse cursor",
		Long: `autoclick posts a left click at the current cursor location every N seconds.

Four named profiles hold the interval. Start and stop from the screen with
enter, or from anywhere with the global hotkey (cmd+shift+s by default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.writeDefaultConfig {
				return writeDefaultConfig(cmd, flags)
			}
			return runUI(cmd.Context(), flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.prefsPath, "prefs", "", "Path to the profile preferences file (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: silent|error|info|verbose|debug (overrides config)")
	pf.StringVar(&flags.logFile, "log-file", "", "Append log lines to this file (overrides config)")
	rootCmd.Flags().BoolVar(&flags.noGlobalHotkey, "no-global-hotkey", false, "Do not register the system-wide hotkey")
	rootCmd.Flags().BoolVar(&flags.writeDefaultConfig, "write-default-config", false, "Write a default config to --config and exit")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newProfilesCmd(flags))

	// Custom help command
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if cmd != cmd.Root() {
			fmt.Fprintln(out, cmd.UsageString())
			return
		}
		fmt.Fprintf(out, "Usage:\n  %s [options]\n  %s <command> [arguments] [options]\n\n", cmd.Name(), cmd.Name())
		fmt.Fprintf(out, "Available Commands:\n")
		for _, subCmd := range cmd.Commands() {
			if !subCmd.Hidden && subCmd.Name() != "help" && subCmd.Name() != "completion" {
				fmt.Fprintf(out, "  %-15s %s\n", subCmd.Name(), subCmd.Short)
			}
		}
		fmt.Fprintf(out, "\nOptions:\n%s", cmd.LocalFlags().FlagUsages())
		fmt.Fprintf(out, "\nUse \"%s help <command>\" for more information about a command.\n", cmd.Name())
	})

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
