// Package project resolves the directory a new project is scaffolded into.
// A named target must not exist yet; without a name the current directory
// is used in place. The resolved absolute path is handed to every later
// stage explicitly, so the process working directory never changes.
package project
