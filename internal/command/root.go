package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "rpcdeck"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "rpcdeck - rich presence profiles and commit viewer",
		Long:          "rpcdeck edits rich presence profiles and shows commit diffs in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "", "path to config file (default ~/.config/rpcdeck/config.json)")
	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "write debug logs")

	cmd.AddCommand(
		NewProfileCmd(),
		NewCommitCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
