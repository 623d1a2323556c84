// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version provides a single location to house the version information
// for btcscript and the utilities provided in the same repository.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	// semanticAlphabet defines the allowed characters for the pre-release
	// portion of a semantic version string.
	semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

	// semanticBuildAlphabet defines the allowed characters for the build
	// portion of a semantic version string.
	semanticBuildAlphabet = semanticAlphabet + "."
)

// These constants define the application version and follow the semantic
// versioning 2.0.0 spec (http://semver.org/).
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease can be overridden at link time with
	// '-ldflags "-X github.com/btcsuite/btcscript/internal/version.PreRelease=foo"'.
	// Characters outside of semanticAlphabet are dropped.
	PreRelease = "pre"

	// BuildMetadata can be overridden at link time with
	// '-ldflags "-X github.com/btcsuite/btcscript/internal/version.BuildMetadata=foo"'.
	// Characters outside of semanticBuildAlphabet are dropped.
	BuildMetadata = "dev"
)

// String returns the application version as a properly formed string per the
// semantic versioning 2.0.0 spec (http://semver.org/).
func String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", Major, Minor, Patch)

	if preRelease := NormalizePreRelString(PreRelease); preRelease != "" {
		b.WriteByte('-')
		b.WriteString(preRelease)
	}
	if build := NormalizeBuildString(BuildMetadata); build != "" {
		b.WriteByte('+')
		b.WriteString(build)
	}

	return b.String()
}

// Banner returns the line the tools print for --version.
func Banner(appName string) string {
	return fmt.Sprintf("%s version %s (Go version %s %s/%s)", appName,
		String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// normalizeSemString returns the passed string stripped of all characters
// which are not valid according to the provided semantic versioning alphabet.
func normalizeSemString(str, alphabet string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(alphabet, r) {
			return r
		}
		return -1
	}, str)
}

// NormalizePreRelString returns the passed string stripped of all characters
// which are not valid for pre-release strings.
func NormalizePreRelString(str string) string {
	return normalizeSemString(str, semanticAlphabet)
}

// NormalizeBuildString returns the passed string stripped of all characters
// which are not valid for build metadata strings.
func NormalizeBuildString(str string) string {
	return normalizeSemString(str, semanticBuildAlphabet)
}
