// Package cli provides the command-line interface for salonplan.
package cli

// CommandLineOpts is the root of the command line options.
type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	GridCommand    GridCommand    `command:"grid" subcommands-optional:"true" description:"show the interactive appointment grid"`
	LayoutCommand  LayoutCommand  `command:"layout" subcommands-optional:"true" description:"print the laid out grid as YAML"`
	AddCommand     AddCommand     `command:"add" subcommands-optional:"true" description:"add an appointment"`
	ImportCommand  ImportCommand  `command:"import" subcommands-optional:"true" description:"import appointments from an iCalendar file"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true" description:"show the program version"`
}

// Opts holds the parsed command line options.
var Opts CommandLineOpts
