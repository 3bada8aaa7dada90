// Package version holds the server version and helpers for comparing
// schema versions during migration.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current server release.
var Version = "0.3.1"

// DevVersion is used when running from source without a release tag.
var DevVersion = "0.0.0"

func GetCurrentVersion(mode string) string {
	if mode == "dev" {
		return DevVersion
	}
	return Version
}

// GetMinorVersion returns the "major.minor" prefix of a version string.
func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

// IsVersionGreaterOrEqualThan returns true if version >= target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(normalize(version), normalize(target)) >= 0
}

// IsVersionGreaterThan returns true if version > target.
func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(normalize(version), normalize(target)) > 0
}

func normalize(version string) string {
	if !strings.HasPrefix(version, "v") {
		return fmt.Sprintf("v%s", version)
	}
	return version
}
