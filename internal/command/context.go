package command

import (
	"database/sql"

	"github.com/adamavenir/rpcdeck/internal/core"
	"github.com/adamavenir/rpcdeck/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CommandContext holds what a command needs from the environment.
type CommandContext struct {
	Config   *core.Config
	Logger   *zap.Logger
	JSONMode bool

	db *sql.DB
}

// GetContext reads config and builds the logger. The database is opened on
// first use.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	jsonMode, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	config, err := core.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// a missing log file must not stop the command
	logger, _ := core.NewLogger(config.LogPath, verbose)
	logger = logger.With(zap.String("cmd", cmd.CommandPath()))

	return &CommandContext{
		Config:   config,
		Logger:   logger,
		JSONMode: jsonMode,
	}, nil
}

// DB opens the profile database.
func (c *CommandContext) DB() (*sql.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	conn, err := db.OpenDatabase(c.Config.DBPath)
	if err != nil {
		return nil, err
	}
	c.db = conn
	return conn, nil
}

// Close releases the database and flushes logs.
func (c *CommandContext) Close() {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
	_ = c.Logger.Sync()
}
