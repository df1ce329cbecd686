package portset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleConf = `server {
    listen 80;
    server_name example.com;
}
`

func TestComputeRewrite(t *testing.T) {
	tests := []struct {
		name    string
		content string
		port    int
		want    string
		found   bool
	}{
		{
			name:    "replaces port",
			content: sampleConf,
			port:    8443,
			want:    strings.Replace(sampleConf, "listen 80;", "listen 8443;", 1),
			found:   true,
		},
		{
			name:    "same port is unchanged",
			content: sampleConf,
			port:    80,
			want:    sampleConf,
			found:   true,
		},
		{
			name:    "only first occurrence",
			content: "listen 80;\nlisten 81;\n",
			port:    9000,
			want:    "listen 9000;\nlisten 81;\n",
			found:   true,
		},
		{
			name:    "keeps whitespace run",
			content: "listen\t \t80;",
			port:    443,
			want:    "listen\t \t443;",
			found:   true,
		},
		{
			name:    "skips directive with address",
			content: "listen 127.0.0.1:80;\nlisten 81;",
			port:    82,
			want:    "listen 127.0.0.1:80;\nlisten 82;",
			found:   true,
		},
		{
			name:    "no directive",
			content: "server { server_name a; }",
			port:    80,
			want:    "server { server_name a; }",
			found:   false,
		},
		{
			name:    "missing semicolon",
			content: "listen 80\n",
			port:    81,
			want:    "listen 80\n",
			found:   false,
		},
		{
			name:    "leading zeros are rewritten",
			content: "listen 080;",
			port:    80,
			want:    "listen 80;",
			found:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ComputeRewrite(Document{Content: tt.content}, tt.port)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestComputeRewriteLeavesDocumentIntact(t *testing.T) {
	doc := Document{Path: "x", Content: sampleConf}
	_, _ = ComputeRewrite(doc, 1234)
	assert.Equal(t, sampleConf, doc.Content)
}

func TestCurrentPort(t *testing.T) {
	p, ok := CurrentPort(sampleConf)
	assert.True(t, ok)
	assert.Equal(t, 80, p)

	_, ok = CurrentPort("nothing here")
	assert.False(t, ok)
}

func TestPreview(t *testing.T) {
	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, preview(exact))
	assert.Equal(t, exact+"...", preview(exact+"b"))
	assert.Equal(t, "short", preview("short"))

	multi := strings.Repeat("é", 60)
	assert.Equal(t, strings.Repeat("é", 50)+"...", preview(multi))
}
