package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/commit"
	"github.com/adamavenir/rpcdeck/internal/presence"
	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	var failed *commit.FetchFailed
	if errors.As(err, &failed) && strings.Contains(failed.Error(), "403") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: GitHub may be rate limiting you. Set RPCDECK_GITHUB_TOKEN.")
	}
	var invalid *presence.ValidationFailed
	if errors.As(err, &invalid) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: fill in the required fields or disable strict_validation in the config.")
	}
	if isSchemaError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: This looks like a schema mismatch. Try removing the profile database.")
	}

	return err
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "has no column")
}
