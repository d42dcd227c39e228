// Package data provides embedded scenario files.
package data

import "embed"

// scenarioFS embeds all scenario YAML files at build time.
//
//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// FS returns the embedded filesystem containing scenario files.
func FS() embed.FS {
	return scenarioFS
}
