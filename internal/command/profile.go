package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adamavenir/rpcdeck/internal/db"
	"github.com/adamavenir/rpcdeck/internal/presence"
	"github.com/adamavenir/rpcdeck/internal/tui"
	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"rpc"},
		Short:   "Manage rich presence profiles",
	}
	cmd.AddCommand(
		newProfileEditCmd(),
		newProfileListCmd(),
		newProfileShowCmd(),
		newProfileRmCmd(),
		newProfileImportCmd(),
		newProfileExportCmd(),
	)
	return cmd
}

// defaultPresence is what a brand new profile starts from.
func defaultPresence(name string) types.PresenceConfig {
	return types.PresenceConfig{
		Name:     name,
		Type:     types.ActivityGame,
		ShowTime: true,
		Buttons:  []types.Button{},
	}
}

func newProfileEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Open the presence editor for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			conn, err := ctx.DB()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			name := args[0]
			profile, err := db.GetProfile(conn, name)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			input := defaultPresence(name)
			if profile != nil {
				input = profile.Config
			}

			save := func(c types.PresenceConfig) error {
				_, err := db.SaveProfile(conn, name, c)
				return err
			}
			model := tui.NewEditorModel(input, save, tui.EditorOptions{
				Title:  fmt.Sprintf("Edit RPC: %s", name),
				Strict: ctx.Config.StrictValidation,
				Logger: ctx.Logger,
			})

			ctx.Logger.Debug("opening editor", zap.String("profile", name), zap.Bool("new", profile == nil))
			final, err := runProgram(model)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			edited := final.(*tui.EditorModel)
			out := cmd.OutOrStdout()
			switch {
			case edited.Saves() > 0:
				fmt.Fprintf(out, "Saved profile %s\n", name)
			case edited.Editor().IsDirty():
				fmt.Fprintf(out, "Discarded unsaved changes to %s\n", name)
			default:
				fmt.Fprintln(out, "No changes")
			}
			return nil
		},
	}
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			conn, err := ctx.DB()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			profiles, err := db.ListProfiles(conn)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				if profiles == nil {
					profiles = []types.Profile{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(profiles)
			}

			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles yet. Create one with: rpcdeck profile edit <name>")
				return nil
			}
			for _, p := range profiles {
				updated := humanize.Time(time.Unix(p.UpdatedAt, 0))
				fmt.Fprintf(out, "%-20s %-10s %s (%s)\n", p.Name, p.Config.Type, p.Config.Name, updated)
			}
			return nil
		},
	}
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			profile, err := loadProfile(ctx, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(profile)
			}
			data, err := yaml.Marshal(profile.Config)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newProfileRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			conn, err := ctx.DB()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			deleted, err := db.DeleteProfile(conn, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if !deleted {
				return writeCommandError(cmd, fmt.Errorf("profile %s not found", args[0]))
			}
			ctx.Logger.Info("profile deleted", zap.String("profile", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
			return nil
		},
	}
}

func newProfileImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a profile from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			var config types.PresenceConfig
			if err := yaml.Unmarshal(data, &config); err != nil {
				return writeCommandError(cmd, fmt.Errorf("parse %s: %w", args[0], err))
			}
			if ctx.Config.StrictValidation {
				if err := presence.Validate(config); err != nil {
					return writeCommandError(cmd, err)
				}
			}

			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			conn, err := ctx.DB()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if _, err := db.SaveProfile(conn, name, config); err != nil {
				return writeCommandError(cmd, err)
			}
			ctx.Logger.Info("profile imported", zap.String("profile", name), zap.String("file", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported profile %s\n", name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "profile name (default: file name)")
	return cmd
}

func newProfileExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a profile as YAML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			profile, err := loadProfile(ctx, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			data, err := yaml.Marshal(profile.Config)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if len(args) == 1 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported profile %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func loadProfile(ctx *CommandContext, name string) (*types.Profile, error) {
	conn, err := ctx.DB()
	if err != nil {
		return nil, err
	}
	profile, err := db.GetProfile(conn, name)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	return profile, nil
}
