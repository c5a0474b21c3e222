package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longkey1/notion-presence/internal/autostart"
	"github.com/longkey1/notion-presence/internal/version"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting the daemon at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the daemon at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := autostart.NewManager(version.Get())
		if err != nil {
			return err
		}
		if err := m.Register(); err != nil {
			return err
		}
		if err := m.CreateAppEntries(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered for startup: %s\n", m.Command())
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting the daemon at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := autostart.NewManager(version.Get())
		if err != nil {
			return err
		}
		if err := m.Unregister(); err != nil {
			if errors.Is(err, autostart.ErrNotRegistered) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not registered for startup")
				return nil
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed from startup")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the daemon starts at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := autostart.NewManager(version.Get())
		if err != nil {
			return err
		}
		registered, err := m.IsRegistered()
		if err != nil {
			return err
		}
		if registered {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered for startup")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Not registered for startup")
		}
		return nil
	},
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
	rootCmd.AddCommand(autostartCmd)
}
