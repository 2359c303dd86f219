package scaffold

import (
	"fmt"

	gitignore "github.com/denormal/go-gitignore"
)

// mustIgnore lists directories the generated project must keep out of git.
var mustIgnore = []string{"node_modules", "dist"}

// checkIgnoreRules parses the generated .gitignore and returns a warning for
// every required directory it does not ignore.
func checkIgnoreRules(path string) ([]string, error) {
	ignore, err := gitignore.NewFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var warnings []string
	for _, dir := range mustIgnore {
		match := ignore.Relative(dir, true)
		if match == nil || !match.Ignore() {
			warnings = append(warnings, fmt.Sprintf(".gitignore does not ignore %s/", dir))
		}
	}
	return warnings, nil
}
