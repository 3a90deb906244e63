// Package persist writes the tax service's response to the output
// directory.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
)

// ArtifactPrefix is prepended to the input file's base name to form the
// response artifact name.
const ArtifactPrefix = "RESPONSE_"

// StorageError reports a failure to create the output directory or write
// the artifact. Always fatal.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to persist response to '%s': %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ArtifactPath computes where the response for originalName lands.
func ArtifactPath(outputDir, originalName string) string {
	return filepath.Join(outputDir, ArtifactPrefix+originalName)
}

// Write pretty-prints the response JSON and writes it to
// outputDir/RESPONSE_<originalName>, creating outputDir as needed and
// silently overwriting any previous artifact. Key order is preserved so
// identical responses produce byte-identical files. Returns the path.
func Write(response []byte, originalName, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", &StorageError{Path: outputDir, Err: err}
	}
	path := ArtifactPath(outputDir, originalName)
	if err := os.WriteFile(path, pretty.Pretty(response), 0o644); err != nil {
		return "", &StorageError{Path: path, Err: err}
	}
	return path, nil
}
