// Package gamedata provides the unit archetype definitions compiled into the
// binary and the registry built from them.
package gamedata

import "embed"

// dataFS holds the archetype JSON shipped with the game.
//
//go:embed *.json
var dataFS embed.FS
