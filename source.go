package portset

import (
	"github.com/atotto/clipboard"
)

// CopyToClipboard puts s on the system clipboard. Empty input is ignored.
func CopyToClipboard(s string) error {
	if s == "" {
		return nil
	}
	return clipboard.WriteAll(s)
}
