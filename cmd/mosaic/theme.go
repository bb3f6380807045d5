package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the gallery theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), themeName(app.Theme.Dark()))
				return nil
			}

			dark := strings.EqualFold(args[0], "dark")
			changed, err := app.Theme.SetDark(dark)
			if err != nil {
				return newCommandError("set theme", "saving the preference", err, "Check disk space and file permissions, then retry.")
			}
			if !changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme is already %s\n", themeName(dark))
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", themeName(dark))
			return nil
		},
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
