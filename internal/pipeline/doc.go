// Package pipeline runs the project creation stages in order: resolve the
// target, create it, write package.json, write the template files, install
// dependencies and optionally start the dev server.
//
// Every stage failure is returned as a *StageError carrying the stage name
// and a Kind, so the caller can report it uniformly. Nothing written before
// a failure is removed.
package pipeline
