package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteDebugUnformatted writes the unformatted source of a failed emission
// to a sidecar file next to the intended output. It is best-effort.
func WriteDebugUnformatted(root string, file GeneratedFile) error {
	if file.Filename == "" || len(file.Content) == 0 {
		return nil
	}

	dir := filepath.Join(root, file.Dir)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output.
	debugName := strings.TrimSuffix(file.Filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, debugName), file.Content, filePerm)
}
