package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamavenir/rpcdeck/internal/types"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeProgram feeds keys to the model instead of running a terminal.
func fakeProgram(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	original := runProgram
	runProgram = func(model tea.Model) (tea.Model, error) {
		model.Init()
		for _, key := range keys {
			model, _ = model.Update(key)
		}
		return model, nil
	}
	t.Cleanup(func() {
		runProgram = original
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProfileEditCreatesAndSaves(t *testing.T) {
	setupHome(t)
	fakeProgram(t, runes("9"), tea.KeyMsg{Type: tea.KeyCtrlS}, tea.KeyMsg{Type: tea.KeyEsc})

	output, err := executeCommand(NewRootCmd("test"), "profile", "edit", "work")
	if err != nil {
		t.Fatalf("edit: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Saved profile work") {
		t.Fatalf("unexpected output %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "profile", "show", "work", "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var profile types.Profile
	if err := json.Unmarshal([]byte(output), &profile); err != nil {
		t.Fatalf("decode: %v\n%s", err, output)
	}
	if profile.Config.ClientID != "9" || profile.Config.Name != "work" {
		t.Fatalf("unexpected profile %+v", profile.Config)
	}
}

func TestProfileEditWithoutChanges(t *testing.T) {
	setupHome(t)
	fakeProgram(t, tea.KeyMsg{Type: tea.KeyCtrlS}, tea.KeyMsg{Type: tea.KeyEsc})

	output, err := executeCommand(NewRootCmd("test"), "profile", "edit", "idle")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(output, "No changes") {
		t.Fatalf("unexpected output %q", output)
	}

	_, err = executeCommand(NewRootCmd("test"), "profile", "show", "idle")
	if err == nil {
		t.Fatal("expected unsaved profile to be missing")
	}
}

func TestProfileEditDiscard(t *testing.T) {
	setupHome(t)
	fakeProgram(t, runes("1"), tea.KeyMsg{Type: tea.KeyEsc})

	output, err := executeCommand(NewRootCmd("test"), "profile", "edit", "scratch")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(output, "Discarded unsaved changes") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestProfileImportExportListRm(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "stream.yaml")
	doc := "client_id: \"42\"\nname: Streaming\ntype: streaming\nurl: https://twitch.tv/x\nbuttons: []\n"
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := executeCommand(NewRootCmd("test"), "profile", "import", src); err != nil {
		t.Fatalf("import: %v", err)
	}

	output, err := executeCommand(NewRootCmd("test"), "profile", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(output, "stream") || !strings.Contains(output, "Streaming") {
		t.Fatalf("unexpected list output %q", output)
	}

	dst := filepath.Join(dir, "out.yaml")
	if _, err := executeCommand(NewRootCmd("test"), "profile", "export", "stream", dst); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "url: https://twitch.tv/x") {
		t.Fatalf("unexpected export %q", data)
	}

	if _, err := executeCommand(NewRootCmd("test"), "profile", "rm", "stream"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := executeCommand(NewRootCmd("test"), "profile", "rm", "stream"); err == nil {
		t.Fatal("expected second rm to fail")
	}

	output, err = executeCommand(NewRootCmd("test"), "profile", "list", "--json")
	if err != nil {
		t.Fatalf("list json: %v", err)
	}
	if strings.TrimSpace(output) != "[]" {
		t.Fatalf("expected empty list, got %q", output)
	}
}

func TestProfileImportRejectsBadType(t *testing.T) {
	setupHome(t)
	src := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(src, []byte("type: dancing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeCommand(NewRootCmd("test"), "profile", "import", src); err == nil {
		t.Fatal("expected import to fail")
	}
}
