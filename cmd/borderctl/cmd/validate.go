package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/animatedborder/pkg/border"
	"github.com/go-drift/animatedborder/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check a border config strictly",
		Long: `Check every value in a border config as strict mode would: widths and
radii must not be negative, glow opacity must be within [0, 1], the cycle
duration must be positive, and every colour must resolve.

All problems are listed, not only the first one.`,
		Usage: "borderctl validate [file]",
		Run:   runValidate,
	})
}

// quietProperties drops property errors, which validate prints itself, and
// forwards everything else.
type quietProperties struct {
	errors.ErrorHandler
}

func (quietProperties) HandlePropertyError(*errors.PropertyError) {}

func runValidate(args []string) error {
	_, positional, err := splitFlags(args)
	if err != nil {
		return err
	}
	cfg, source, err := loadConfig(positional)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	prev := errors.DefaultHandler
	errors.SetHandler(quietProperties{prev})
	defer errors.SetHandler(prev)

	var problems []error
	for _, opt := range opts {
		if _, err := border.New(border.Strict(), opt); err != nil {
			problems = append(problems, err)
		}
	}

	if len(problems) == 0 {
		fmt.Fprintf(stdout, "%s: ok\n", source)
		return nil
	}
	for _, p := range problems {
		var perr *errors.PropertyError
		if stderrors.As(p, &perr) {
			fmt.Fprintf(stdout, "%s: %s: %s (got %v)\n", source, perr.Property, perr.Reason, perr.Value)
			continue
		}
		fmt.Fprintf(stdout, "%s: %v\n", source, p)
	}
	return fmt.Errorf("%d invalid value(s) in %s", len(problems), source)
}
