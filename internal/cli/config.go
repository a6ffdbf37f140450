package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uoon-dev/sancho/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect sancho configuration",
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	var configPath string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return err
			}
			if err := mgr.Load(); err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			if err := enc.Encode(mgr.Get()); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if used := mgr.Viper().ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# loaded from %s\n", used)
			}
			return nil
		},
	}
	showCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/sancho/config.yaml)")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the directory searched for config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	configCmd.AddCommand(schemaCmd, showCmd, pathCmd)
	return configCmd
}
