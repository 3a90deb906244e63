// Package input loads and checks the tax payload file named on the
// command line.
package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// NotFoundError reports a missing input file. Suggestions lists sibling
// files that look like tax payloads; it is best-effort and may be empty.
type NotFoundError struct {
	Path        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("input file '%s' not found", e.Path)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean one of: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// MalformedError reports an input file whose contents are not valid JSON.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("input file '%s' is not valid JSON: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Load reads the payload file at path. It returns the raw JSON bytes and
// the file's base name, which later names the response artifact.
func Load(path string) ([]byte, string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, "", &NotFoundError{Path: path, Suggestions: suggestSiblings(path)}
		}
		return nil, "", fmt.Errorf("failed to stat input file '%s': %w", path, err)
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input file '%s': %w", path, err)
	}
	if !gjson.ValidBytes(fileBytes) {
		return nil, "", &MalformedError{Path: path, Err: parseDiagnostic(fileBytes)}
	}
	return fileBytes, filepath.Base(path), nil
}

// parseDiagnostic recovers the underlying parser message (position and
// cause) for a payload already known to be invalid.
func parseDiagnostic(fileBytes []byte) error {
	var raw json.RawMessage
	if err := json.Unmarshal(fileBytes, &raw); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON syntax")
}

// suggestSiblings enumerates the containing directory for files that look
// like tax payloads: a .json extension or a name containing "tax" or
// "order". Purely diagnostic; any failure here yields an empty list.
func suggestSiblings(path string) []string {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return nil
	}
	var suggestions []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, ".json") ||
			strings.Contains(lower, "tax") ||
			strings.Contains(lower, "order") {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions
}
