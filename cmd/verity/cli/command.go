// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the CLI tree: either a group that dispatches
// to Subcommands, or a leaf with a Run function, or both.
type Command struct {
	// Name is what the user types to select the command ("verify").
	Name string

	// Summary is the one-liner listed in the parent's help.
	Summary string

	// Description is the full text of the command's own help. Summary
	// is used when it is empty.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	// Examples are printed at the end of the help output.
	Examples []Example

	// Params returns a pointer to a struct whose tagged fields become
	// the command's flags (see [BindFlags]). The struct is populated
	// before Run is called.
	Params func() any

	// Flags returns a hand-built flag set. It is consulted only when
	// Params is nil.
	Flags func() *pflag.FlagSet

	// Subcommands are selected by the first positional argument.
	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// A command with both Subcommands and Run runs itself when the
	// first argument is a flag or there are no arguments.
	Run func(args []string) error

	parent *Command
}

// Example is one entry in the Examples section of help output.
type Example struct {
	Description string
	Command     string
}

// Execute runs the command tree against args (without the program
// name).
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 {
		if handled, err := c.dispatch(args); handled {
			return err
		}
	}

	positional, err := c.parseFlags(args)
	if err != nil {
		return err
	}
	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		return fmt.Errorf("no action defined for %q", c.fullName())
	}
	return c.Run(positional)
}

// dispatch hands args to the selected subcommand. It reports handled
// as false when c should parse its own flags and run.
func (c *Command) dispatch(args []string) (handled bool, err error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		if c.Run != nil {
			return false, nil
		}
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return true, errors.New("subcommand required")
		}
		return true, fmt.Errorf("subcommand required (got flag %q)", args[0])
	}

	name := args[0]
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return true, sub.Execute(args[1:])
		}
	}

	message := fmt.Sprintf("unknown command %q", name)
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		message += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return true, c.usageError(message)
}

// parseFlags parses args against the command's flags and returns the
// positional arguments.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return args, nil
	}
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		message := err.Error()
		if strings.Contains(message, "unknown flag") {
			// A fresh set: the failed parse may have consumed state.
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				message += fmt.Sprintf(" (did you mean %s?)", suggestion)
			}
		}
		return nil, c.usageError(message)
	}
	return flagSet.Args(), nil
}

// flagSet builds a fresh flag set, or returns nil for a command
// without flags.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Params != nil {
		return FlagsFromParams(c.Name, c.Params())
	}
	if c.Flags != nil {
		return c.Flags()
	}
	return nil
}

func (c *Command) usageError(message string) error {
	return fmt.Errorf("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// PrintHelp writes the command's help text to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine(name))
	c.writeSubcommands(w)
	c.writeFlags(w)
	c.writeExamples(w)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) usageLine(name string) string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return name + " <command> [flags]"
	default:
		return name + " [flags]"
	}
}

func (c *Command) writeSubcommands(w io.Writer) {
	if len(c.Subcommands) == 0 {
		return
	}
	fmt.Fprintf(w, "\nCommands:\n")
	table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, sub := range c.Subcommands {
		fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
	}
	table.Flush()
}

func (c *Command) writeFlags(w io.Writer) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return
	}
	if usages := flagSet.FlagUsages(); usages != "" {
		fmt.Fprintf(w, "\nFlags:\n%s", usages)
	}
}

func (c *Command) writeExamples(w io.Writer) {
	if len(c.Examples) == 0 {
		return
	}
	fmt.Fprintf(w, "\nExamples:\n")
	for _, example := range c.Examples {
		if example.Description == "" {
			fmt.Fprintf(w, "  %s\n", example.Command)
			continue
		}
		fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
	}
}

// fullName is the space-separated path from the root ("verity verify").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
