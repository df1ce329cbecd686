package portset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	after := strings.Replace(sampleConf, "listen 80;", "listen 8443;", 1)

	d, err := UnifiedDiff("web.conf", sampleConf, after)
	require.NoError(t, err)
	assert.Contains(t, d, "--- web.conf (current)\n")
	assert.Contains(t, d, "+++ web.conf (rewritten)\n")
	assert.Contains(t, d, "-    listen 80;\n")
	assert.Contains(t, d, "+    listen 8443;\n")
	assert.Contains(t, d, " server {\n")

	d, err = UnifiedDiff("web.conf", sampleConf, sampleConf)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestFormatOutcome(t *testing.T) {
	o := Outcome{Changed: true, Config: "/x.conf", Port: 81, Message: "Port updated to 81", Diff: "-a\n+b\n"}

	out := FormatOutcome(o, true)
	assert.Contains(t, out, "Port updated to 81")
	assert.Contains(t, out, "check mode")
	assert.Contains(t, out, "/x.conf")
	assert.Contains(t, out, "+b")

	out = FormatOutcome(o, false)
	assert.NotContains(t, out, "check mode")
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(Summary{Restored: "/x.conf", Message: "Undone"})
	assert.Contains(t, out, "Undone")
	assert.Contains(t, out, "/x.conf")
}
