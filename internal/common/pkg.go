package common

import (
	"path"
	"strconv"
	"strings"
)

// PkgAlias returns the name a package is usually referred to by: the last
// element of its import path, skipping a major version suffix such as "v2".
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) && path.Dir(pkgPath) != "." {
		return path.Base(path.Dir(pkgPath))
	}

	return base
}

func isMajorVersion(elem string) bool {
	digits, ok := strings.CutPrefix(elem, "v")
	if !ok || digits == "" {
		return false
	}

	n, err := strconv.Atoi(digits)

	return err == nil && n >= 2
}
