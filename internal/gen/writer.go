package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"confstruct/internal/errors"
	"confstruct/internal/naming"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes generated content to path, creating the directory if it
// doesn't exist. An unchanged file is left untouched so its modification
// time stays stable. It reports whether the file was written.
func WriteFile(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, errors.Wrap(err, "creating output directory")
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return false, errors.Wrapf(err, "writing file %s", path)
	}

	// A stale sidecar from an earlier failed render no longer applies.
	_ = os.Remove(DebugPath(path))

	return true, nil
}

// OutputName returns the file name generated for a root type, e.g.
// "Config" with suffix "_confstruct.go" gives "config_confstruct.go".
func OutputName(typeName, suffix string) string {
	return naming.SnakeCase(typeName) + suffix
}
