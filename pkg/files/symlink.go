// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Symlink is a local template file that is a symbolic link. Symlinks are
// rejected unless their destination is explicitly allowed.
type Symlink struct {
	path string
}

type SymlinkAllowOpts struct {
	AllowAll        bool
	AllowedDstPaths []string
}

func (s Symlink) IsAllowed(opts SymlinkAllowOpts) error {
	if opts.AllowAll {
		return nil
	}

	dstPath, err := filepath.EvalSymlinks(s.path)
	if err != nil {
		return fmt.Errorf("Resolving symlink '%s': %s", s.path, err)
	}

	for _, allowedDstPath := range opts.AllowedDstPaths {
		within, err := isWithin(dstPath, allowedDstPath)
		if within || err != nil {
			return err
		}
	}

	return fmt.Errorf("Expected symlink file '%s' -> '%s' to be allowed, but was not "+
		"(hint: use --allow-symlink-destination)", s.path, dstPath)
}

func isWithin(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", path, err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", dir, err)
	}

	if absPath == absDir {
		return true, nil
	}
	return strings.HasPrefix(absPath, strings.TrimSuffix(absDir, string(filepath.Separator))+string(filepath.Separator)), nil
}
