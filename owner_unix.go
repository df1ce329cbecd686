//go:build !windows

package portset

import (
	"io/fs"
	"os"
	"syscall"
)

// keepOwner gives f the uid/gid recorded in info. It is a no-op when they
// already match the current process.
func keepOwner(f *os.File, info fs.FileInfo) error {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	uid, gid := int(st.Uid), int(st.Gid)
	if uid == os.Geteuid() && gid == os.Getegid() {
		return nil
	}
	return f.Chown(uid, gid)
}
