// Package streakboard embeds static assets shipped with the server binary.
package streakboard

import "embed"

// WebFS holds the plugin manifest served at /plugin.json.
//
//go:embed web/plugin.json
var WebFS embed.FS
