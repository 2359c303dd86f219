package pkgjson

import "github.com/aymanbagabas/go-udiff"

// Diff returns a unified diff between the manifest npm produced and the
// rewritten one. It is empty when nothing changed.
func Diff(before, after []byte) string {
	return udiff.Unified(FileName+" (npm init)", FileName, string(before), string(after))
}
