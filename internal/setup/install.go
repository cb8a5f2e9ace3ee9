package setup

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed docs/interactive-command.md
var interactiveCommandDoc string

//go:embed docs/debug-command.md
var debugCommandDoc string

//go:embed docs/project-readme.md
var projectReadmeDoc string

// Install writes the slash-command scaffolding into the project rooted
// at dir, so an agent driving this CLI discovers the start/send/read/
// status surface. Idempotent: existing files are overwritten with the
// same fixed content. Returns the paths written.
func Install(dir string) ([]string, error) {
	commandsDir := filepath.Join(dir, ".claude", "commands")
	if err := os.MkdirAll(commandsDir, 0o755); err != nil {
		return nil, err
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(commandsDir, "interactive.md"), interactiveCommandDoc},
		{filepath.Join(commandsDir, "repl-debug.md"), debugCommandDoc},
		{filepath.Join(dir, ".claude", "README.md"), projectReadmeDoc},
	}

	var written []string
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return written, err
		}
		written = append(written, f.path)
	}
	return written, nil
}
