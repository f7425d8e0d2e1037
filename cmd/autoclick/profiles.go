package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tturner/autoclick/internal/clicker"
	"github.com/tturner/autoclick/internal/errors"
	"github.com/tturner/autoclick/internal/logging"
	"github.com/tturner/autoclick/internal/prefs"
	"github.com/tturner/autoclick/internal/profile"
)

type profileEditFlags struct {
	name     string
	interval string
}

func newProfilesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List or edit saved click profiles",
	}
	cmd.AddCommand(newProfilesListCmd(root))
	cmd.AddCommand(newProfilesEditCmd(root))
	return cmd
}

func newProfilesListCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the four profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := openProfileStore(root)
			if err != nil {
				return err
			}
			defer logger.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tNAME\tINTERVAL\tSTATUS")
			for i, p := range store.All() {
				status := "ok"
				if _, err := clicker.ParseInterval(p.Interval); err != nil {
					status = "not set"
					if strings.TrimSpace(p.Interval) != "" {
						status = "invalid"
					}
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, p.Name, displayInterval(p.Interval), status)
			}
			return w.Flush()
		},
	}
}

func newProfilesEditCmd(root *rootFlags) *cobra.Command {
	flags := &profileEditFlags{}
	cmd := &cobra.Command{
		Use:   "edit <slot>",
		Short: "Rename a profile or change its interval",
		Long: `Edit one of the four profile slots (1-4) and save it.

Without --name or --interval an interactive form is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSlot(args[0])
			if err != nil {
				return err
			}

			store, logger, err := openProfileStore(root)
			if err != nil {
				return err
			}
			defer logger.Close()

			p, err := store.Get(index)
			if err != nil {
				return err
			}

			nameSet := cmd.Flags().Changed("name")
			intervalSet := cmd.Flags().Changed("interval")
			if nameSet {
				p.Name = flags.name
			}
			if intervalSet {
				p.Interval = flags.interval
			}
			if !nameSet && !intervalSet {
				if err := buildProfileForm(index, &p).Run(); err != nil {
					return err
				}
			}

			if strings.TrimSpace(p.Name) == "" {
				return fmt.Errorf("profile name must not be empty")
			}
			if err := validateIntervalText(p.Interval); err != nil {
				return err
			}

			if err := store.Set(index, p); err != nil {
				return err
			}
			if err := store.Save(index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %ss\n", p.Name, p.Interval)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "New profile name")
	cmd.Flags().StringVar(&flags.interval, "interval", "", "New interval in seconds (empty clears it)")
	return cmd
}

func buildProfileForm(index int, p *profile.Profile) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Profile %d name", index+1)).
				Key("name").
				Value(&p.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Interval (seconds)").
				Description("How long to wait between clicks. Leave empty to clear.").
				Key("interval").
				Value(&p.Interval).
				Validate(validateIntervalText),
		),
	)
}

// validateIntervalText accepts an empty interval (an unset slot) or a
// positive number of seconds.
func validateIntervalText(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := clicker.ParseInterval(s)
	return err
}

func parseSlot(arg string) (int, error) {
	slot, err := strconv.Atoi(arg)
	if err != nil || slot < 1 || slot > profile.Count {
		return 0, fmt.Errorf("slot must be 1-%d, got %q", profile.Count, arg)
	}
	return slot - 1, nil
}

func displayInterval(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s + "s"
}

func openProfileStore(root *rootFlags) (*profile.Store, *logging.Logger, error) {
	cfg, err := resolveConfig(root)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	backing, err := prefs.OpenFile(cfg.PrefsPath)
	if err != nil {
		logger.Close()
		return nil, nil, errors.WrapPrefsError(err, cfg.PrefsPath)
	}
	store := profile.NewStore(backing)
	store.Load()
	return store, logger, nil
}
