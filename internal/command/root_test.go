package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RPCDECK_GITHUB_TOKEN", "")
	return home
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(output, "rpcdeck version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCmd("test")
	for _, name := range []string{"profile", "commit"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Fatalf("expected %s command, got %v", name, err)
		}
	}
}
