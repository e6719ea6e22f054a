// Package skoolach embeds the shipped SKOOLACH world so the binary runs
// without a game directory.
package skoolach

import "embed"

// FS holds the world's Lua files at its root.
//
//go:embed *.lua
var FS embed.FS
