// Package site holds the page served in front of a build directory.
package site

import "embed"

//go:embed index.html
var Dir embed.FS
