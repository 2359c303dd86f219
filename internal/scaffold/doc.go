// Package scaffold writes the starter files of a React + Vite + Tailwind
// project from templates embedded in the binary. Files ending in .tmpl are
// rendered with text/template (plus the sprig function set); everything else
// is copied verbatim.
package scaffold
