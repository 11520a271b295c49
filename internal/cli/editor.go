package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// commentPrefix marks editor lines that are dropped from the result. A plain
// "#" would eat Markdown headings.
const commentPrefix = "#:"

// EditText opens text in the user's editor below a comment header and
// returns the edited text with comment lines removed and surrounding blank
// space trimmed.
func EditText(text, header string) (string, error) {
	var b strings.Builder
	for _, line := range strings.Split(header, "\n") {
		b.WriteString(commentPrefix + " " + line + "\n")
	}
	b.WriteString(commentPrefix + " Lines starting with '" + commentPrefix + "' are ignored.\n")
	b.WriteString(text)

	out, err := EditInEditor([]byte(b.String()), ".md")
	if err != nil {
		return "", err
	}
	return stripComments(string(out)), nil
}

func stripComments(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// EditInEditor writes content to a temporary file, opens it in $VISUAL or
// $EDITOR and returns the file's content once the editor exits.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass the text with a flag instead of -i")
	}

	tmp, err := os.CreateTemp("", "campus-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	_, werr := tmp.Write(content)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", werr)
	}

	if err := runEditor(editor, path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return edited, nil
}

// getEditor returns the editor command from environment.
// Checks VISUAL first (for graphical editors), then EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor executes the editor with the given file path. The editor
// command may carry arguments ("code --wait").
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
	default:
		return fmt.Errorf("failed to run editor: %w", err)
	}
}
