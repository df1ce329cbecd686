package portset

import (
	"regexp"
	"strconv"
)

var listenPattern = regexp.MustCompile(`listen\s+([0-9]+);`)

// ComputeRewrite returns the document content with the digits of the first
// `listen <digits>;` directive replaced by port. The second value reports
// whether a directive was found at all.
func ComputeRewrite(doc Document, port int) (string, bool) {
	loc := listenPattern.FindStringSubmatchIndex(doc.Content)
	if loc == nil {
		return doc.Content, false
	}

	start, end := loc[2], loc[3]
	return doc.Content[:start] + strconv.Itoa(port) + doc.Content[end:], true
}

// CurrentPort reports the port of the first listen directive, if any.
func CurrentPort(content string) (int, bool) {
	m := listenPattern.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	p, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return p, true
}

func preview(content string) string {
	r := []rune(content)
	if len(r) <= previewLimit {
		return content
	}
	return string(r[:previewLimit]) + "..."
}
