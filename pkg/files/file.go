// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	yamlExts = []string{".yaml", ".yml"}
	jsonExts = []string{".json"}
	tomlExts = []string{".toml"}
)

// Type determines how a data values file is decoded. Templates are
// accepted regardless of their Type.
type Type int

const (
	TypeUnknown Type = iota
	TypeYAML
	TypeJSON
	TypeTOML
)

func (t Type) String() string {
	switch t {
	case TypeYAML:
		return "yaml"
	case TypeJSON:
		return "json"
	case TypeTOML:
		return "toml"
	default:
		return "unknown"
	}
}

type File struct {
	src     Source
	relPath string
}

type NewFilesOpts struct {
	Recursive bool
	Symlinks  SymlinkAllowOpts
}

// NewFiles resolves paths ("-" for stdin, HTTP(S) URLs, files and, when
// recursive, directories) into Files in a stable order.
func NewFiles(paths []string, opts NewFilesOpts) ([]*File, error) {
	var fileSrcs []Source

	for _, path := range paths {
		switch {
		case path == "-":
			fileSrcs = append(fileSrcs, NewStdinSource())

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			fileSrcs = append(fileSrcs, NewHTTPSource(path))

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			if fileInfo.IsDir() {
				if !opts.Recursive {
					return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
				}

				selectedPaths, err := listFiles(path, opts.Symlinks)
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %s", path, err)
				}

				for _, selectedPath := range selectedPaths {
					fileSrcs = append(fileSrcs, NewLocalSource(selectedPath, path))
				}
			} else {
				err := checkSymlink(path, opts.Symlinks)
				if err != nil {
					return nil, err
				}
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func listFiles(dir string, symlinkOpts SymlinkAllowOpts) ([]string, error) {
	var selectedPaths []string

	err := filepath.Walk(dir, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if err := checkSymlink(walkedPath, symlinkOpts); err != nil {
			return err
		}
		selectedPaths = append(selectedPaths, walkedPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(selectedPaths)
	return selectedPaths, nil
}

func checkSymlink(path string, opts SymlinkAllowOpts) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("Checking file '%s': %s", path, err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return Symlink{path}.IsAllowed(opts)
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

// LocalPath returns the filesystem path of files backed by local files.
func (r *File) LocalPath() (string, bool) {
	if localSrc, ok := r.src.(LocalSource); ok {
		return localSrc.Path(), true
	}
	return "", false
}

func (r *File) Type() Type {
	switch {
	case r.matchesExt(yamlExts):
		return TypeYAML
	case r.matchesExt(jsonExts):
		return TypeJSON
	case r.matchesExt(tomlExts):
		return TypeTOML
	default:
		return TypeUnknown
	}
}

func (r *File) matchesExt(exts []string) bool {
	filename := strings.ToLower(filepath.Base(r.RelativePath()))
	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
