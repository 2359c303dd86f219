// Package runner executes external commands (package managers, dev servers)
// on behalf of the scaffolding pipeline. The Runner interface lets the
// pipeline be exercised in tests with Mock, which records every invocation
// and can simulate the side effects of a real command.
package runner
