// Package project locates the Go module a border configuration belongs to.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/animatedborder/pkg/config"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// Project describes a resolved project directory.
type Project struct {
	Root       string
	ModulePath string
	// Name is the last element of the module path, without a major version
	// suffix, or the directory name outside a module.
	Name string
	// ConfigPath is the border.yaml path, which may not exist.
	ConfigPath string
	Config     *config.Config
}

// FindRoot walks up from dir to the nearest directory holding go.mod.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// Resolve loads the project rooted at the nearest go.mod above dir. Outside
// a module, dir itself is used and ModulePath stays empty.
func Resolve(dir string) (*Project, error) {
	root, err := FindRoot(dir)
	modPath := ""
	if err == nil {
		modPath, err = modulePath(root)
		if err != nil {
			return nil, err
		}
	} else {
		if root, err = filepath.Abs(dir); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadOptional(root)
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:       root,
		ModulePath: modPath,
		Name:       defaultName(modPath, root),
		ConfigPath: filepath.Join(root, config.FileName),
		Config:     cfg,
	}, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modPath, dir string) string {
	base := filepath.Base(dir)
	if modPath != "" {
		prefix, _, ok := module.SplitPathVersion(modPath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "border"
	}
	return base
}
