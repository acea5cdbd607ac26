// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package version holds the version of this build of stpl and checks it
against version constraints.
*/
package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is set at build time via -ldflags "-X carvel.dev/stpl/pkg/version.Version=..."
var Version = "develop"

// RequireAtLeast fails unless Version is at least minVersion.
func RequireAtLeast(minVersion string) error {
	return Require(">= " + minVersion)
}

// Require fails unless Version satisfies constraint (e.g. ">= 0.2, < 1.0").
// Development builds satisfy every constraint.
func Require(constraint string) error {
	userConstraint, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("Parsing version constraint '%s': %s", constraint, err)
	}

	if Version == "develop" {
		return nil
	}

	stplVersion, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("Parsing stpl version '%s': %s", Version, err)
	}

	if !userConstraint.Check(stplVersion) {
		return fmt.Errorf("stpl version %s does not satisfy the required version '%s'", Version, constraint)
	}
	return nil
}
