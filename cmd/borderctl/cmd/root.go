// Package cmd implements the borderctl commands.
//
// A root command dispatches to subcommands (render, validate, serve,
// version). Each subcommand parses its own flags.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "borderctl",
	Short: "borderctl - animated border tooling",
	Long: `borderctl works with animated border descriptions kept in border.yaml.
It prints the update a renderer would receive, checks values strictly,
and serves the border to a renderer over a websocket.

Use "borderctl <command> --help" for more information about a command.`,
	Usage: "borderctl [--debug] [--dir DIR] <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Global state shared by commands.
var (
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
	workDir           = "."
	logger            = newLogger(stderr, false)
)

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	debug := false
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--debug":
			if len(filteredArgs) == 0 {
				debug = true
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		case "--dir":
			if len(filteredArgs) > 0 {
				filteredArgs = append(filteredArgs, arg)
				continue
			}
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a directory path")
			}
			workDir = args[i+1]
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--dir="); ok && len(filteredArgs) == 0 {
				workDir = v
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	logger = newLogger(stderr, debug)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: debug})

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printVersion() {
	fmt.Fprintf(stdout, "borderctl version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --debug              Log at debug level")
	fmt.Fprintln(stdout, "  --dir DIR            Project directory (default: current directory)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  borderctl render                 Print the update for ./border.yaml")
	fmt.Fprintln(stdout, "  borderctl validate hero.yaml     Check every value in hero.yaml")
	fmt.Fprintln(stdout, "  borderctl serve --addr :9000     Serve the border to a renderer")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
