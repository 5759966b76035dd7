package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/go-drift/animatedborder/pkg/border"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Print the renderer update for a border",
		Long: `Build the border described by a config file and print the update a
renderer receives on first mount, as JSON.

Without a file argument, border.yaml in the project root is used. A missing
border.yaml renders the defaults.

Flags:
  --strict    Reject invalid values instead of passing them through
  --compact   Print on a single line`,
		Usage: "borderctl render [file] [--strict] [--compact]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	flags, positional, err := splitFlags(args)
	if err != nil {
		return err
	}
	cfg, source, err := loadConfig(positional)
	if err != nil {
		return err
	}
	if _, ok := flags["--strict"]; ok {
		cfg.Strict = true
	}

	b, err := cfg.Build(border.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	update := b.Flush()
	var data []byte
	if _, ok := flags["--compact"]; ok {
		data, err = json.Marshal(update)
	} else {
		data, err = json.MarshalIndent(update, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
