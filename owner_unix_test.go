//go:build !windows

package portset

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileOwner(t *testing.T, path string) (int, int) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	st, ok := info.Sys().(*syscall.Stat_t)
	require.True(t, ok)
	return int(st.Uid), int(st.Gid)
}

func TestRunKeepsFileOwner(t *testing.T) {
	app := newTestApp(t, nil)
	path := writeConf(t, sampleConf)

	uid, gid := os.Geteuid(), os.Getegid()
	if uid == 0 {
		uid, gid = 4242, 4243
		require.NoError(t, os.Chown(path, uid, gid))
	}

	_, err := app.Run(Request{Port: 81, ConfigPath: path})
	require.NoError(t, err)

	gotUID, gotGID := fileOwner(t, path)
	assert.Equal(t, uid, gotUID)
	assert.Equal(t, gid, gotGID)
}
