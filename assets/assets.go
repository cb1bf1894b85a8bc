// Package assets embeds the bundled sandbox levels.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:levels
var levelFS embed.FS

// LevelsDir is the directory inside FS holding the .tmx files.
const LevelsDir = "levels"

// FS returns the embedded asset tree. Server flags can swap it for os.DirFS.
func FS() fs.FS {
	return levelFS
}
