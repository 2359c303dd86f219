// Package pkgjson rewrites the package.json produced by "npm init" into the
// manifest of a React + Vite + Tailwind project. Edits are applied to the raw
// JSON so every field npm wrote keeps its position; only scripts,
// dependencies, devDependencies and type are set. The result is validated
// against an embedded JSON Schema and every pinned version range must parse
// as a semver constraint.
package pkgjson
