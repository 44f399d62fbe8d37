package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todochat/internal/config"
	"github.com/idilsaglam/todochat/internal/ui"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default user config if none exists",
			Args:  exactArgs(0, ""),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.NewLoader(o.log).EnsureUserConfig()
				if err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "config at "+path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  exactArgs(0, ""),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := yaml.Marshal(o.cfg)
				if err != nil {
					return fmt.Errorf("marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
	)
	return cmd
}
