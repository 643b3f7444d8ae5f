package common

import (
	"path"
	"strings"
)

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// PkgNameFromDir derives a package clause from a directory, e.g.
// "internal/app-config" gives "appconfig". Returns "main" when nothing usable is left.
func PkgNameFromDir(dir string) string {
	alias := strings.ToLower(PkgAlias(strings.ReplaceAll(dir, "\\", "/")))

	var b strings.Builder

	for _, r := range alias {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' && b.Len() > 0 {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "main"
	}

	return b.String()
}
