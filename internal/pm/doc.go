// Package pm drives the package managers a scaffolded project depends on.
// npm is the primary manager: it creates the manifest, installs alternates
// globally and regenerates package-lock.json. An alternate manager (bun by
// default) performs the actual dependency install when selected.
package pm
