package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/animatedborder/cmd/borderctl/internal/project"
	"github.com/go-drift/animatedborder/pkg/config"
)

// loadConfig reads the file named by the first positional argument, or the
// project's border.yaml when there is none. It returns the config and the
// path it came from.
func loadConfig(positional []string) (*config.Config, string, error) {
	if len(positional) > 1 {
		return nil, "", fmt.Errorf("expected at most one config file, got %d", len(positional))
	}
	if len(positional) == 1 {
		path := positional[0]
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	p, err := project.Resolve(workDir)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("resolved project",
		"root", p.Root,
		"module", p.ModulePath,
		"name", p.Name,
	)
	return p.Config, p.ConfigPath, nil
}

// splitFlags separates "--flag" style arguments from positional ones.
// Flags listed in withValue consume the following argument.
func splitFlags(args []string, withValue ...string) (flags map[string]string, positional []string, err error) {
	flags = make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg, "=")
		takesValue := false
		for _, w := range withValue {
			if w == name {
				takesValue = true
				break
			}
		}
		if takesValue && !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		flags[name] = value
	}
	return flags, positional, nil
}
