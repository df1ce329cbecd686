package portset

import "time"

const (
	DefaultConfigPath = "/tmp/nginx-test/nginx-web.conf"
	previewLimit      = 50
)

// Document is the full text of a config file as read at one point in time.
// A rewrite never mutates it; it produces new text instead.
type Document struct {
	Path     string
	Content  string
	LoadedAt time.Time
}

type Request struct {
	Port       int
	ConfigPath string
	Check      bool
	// AllowMissing turns an absent listen directive into a no-op instead of ErrNoDirective.
	AllowMissing bool
}

// Outcome is the structured result of one Run.
type Outcome struct {
	Changed  bool   `json:"changed"`
	Original string `json:"original"`
	Config   string `json:"config"`
	Port     int    `json:"port"`
	Message  string `json:"message"`
	// Diff is only filled when the caller asked for it.
	Diff string `json:"diff,omitempty"`
}

type Summary struct {
	Restored string `json:"restored"`
	Message  string `json:"message"`
}
