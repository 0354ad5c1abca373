package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage the configuration",
	}

	cmd.AddCommand(newConfigShowCommand(rootOpts))
	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigExportCommand(rootOpts))
	cmd.AddCommand(newConfigImportCommand(rootOpts))
	return cmd
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "config")
			if err != nil {
				return err
			}
			if s.out.JSON() {
				return s.out.Success(s.cfg)
			}
			data, err := json.MarshalIndent(s.cfg, "", "  ")
			if err != nil {
				return s.out.Fail(err)
			}
			fmt.Fprintf(s.out.Writer, "# %s\n%s\n", s.configPath, data)
			return nil
		},
	}
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "config")
			if err != nil {
				return err
			}
			if _, err := os.Stat(s.configPath); err == nil && !force {
				return s.out.Fail(fmt.Errorf("config %s already exists (use --force to overwrite)", s.configPath))
			}
			if err := project.SaveAppConfig(s.configPath, model.DefaultAppConfig()); err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(map[string]string{"path": s.configPath})
			}
			fmt.Fprintf(s.out.Writer, "Wrote %s\n", s.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func newConfigExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <backup.json>",
		Short: "Back up the configuration and all templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "config")
			if err != nil {
				return err
			}
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return s.out.Fail(err)
			}
			if err := project.ExportAllData(args[0], s.cfg, store); err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(map[string]any{"path": args[0], "templates": len(store.Templates)})
			}
			fmt.Fprintf(s.out.Writer, "Backed up config and %d template(s) to %s\n", len(store.Templates), args[0])
			return nil
		},
	}
}

func newConfigImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore the configuration and templates from a backup",
		Long: `Restore the configuration and templates from a backup written by
"config export". The current configuration and templates are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "config")
			if err != nil {
				return err
			}
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return s.out.Fail(err)
			}
			if err := project.SaveAppConfig(s.configPath, backup.Config); err != nil {
				return s.out.Fail(err)
			}
			if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
				return s.out.Fail(err)
			}
			s.log.Infof("restored backup created %s (version %s)", backup.CreatedAt, backup.Version)

			if s.out.JSON() {
				return s.out.Success(map[string]any{"path": args[0], "templates": len(backup.Templates.Templates)})
			}
			fmt.Fprintf(s.out.Writer, "Restored config and %d template(s) from %s\n", len(backup.Templates.Templates), args[0])
			return nil
		},
	}
}
