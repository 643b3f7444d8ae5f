package gen

import (
	"os"
	"path/filepath"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outputPath string, content []byte) error {
	if outputPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
		return err
	}

	return os.WriteFile(DebugPath(outputPath), content, filePerm)
}

// DebugPath returns the sidecar path used for unformatted output. It does
// not end in .go, so the broken text never joins the package build.
func DebugPath(outputPath string) string {
	return outputPath + ".unformatted"
}
