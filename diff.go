package portset

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders before→after as a unified diff against path.
// It returns "" when the contents are equal.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path + " (current)",
		ToFile:   path + " (rewritten)",
		Context:  3,
	})
}
