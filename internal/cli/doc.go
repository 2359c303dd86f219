// Package cli defines the Cobra command tree for the create-react-tw CLI.
// The root command scaffolds a project; version, config and doctor are
// registered as subcommands, one per file. Commands delegate to internal
// packages and only handle flags, output formatting and prompting.
package cli
