// Package version carries the module's own semantic version, reported
// by the admin API for diagnostics; it is never wire-visible.
package version

import "github.com/blang/semver"

// Current is the running build's version, analogous to the teacher's
// common/version.CURRENT_VERSION.
var Current = semver.MustParse("0.1.0")
