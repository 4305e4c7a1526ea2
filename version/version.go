// Package version tracks the application and schema versions used by the
// migration history.
package version

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current application version. The schema version is its
// major.minor pair; patch releases never change the schema.
var Version = "0.1.0"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the major.minor part of a version string with a
// zero patch, the granularity at which migrations apply.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > 0
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) >= 0
}

// SortVersionList sorts version strings ascending by semver order.
func SortVersionList(list []string) {
	sort.Slice(list, func(i, j int) bool {
		return semver.Compare(fmt.Sprintf("v%s", list[i]), fmt.Sprintf("v%s", list[j])) < 0
	})
}
