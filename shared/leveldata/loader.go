package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names read from the TMX file.
const (
	GroupHands         = "Hands"
	GroupPickables     = "Pickables"
	GroupMiracleTokens = "MiracleTokens"
)

// LoadLevel parses a TMX file. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (*LevelData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	data := &LevelData{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(levelMap.Width),
		Depth: float64(levelMap.Height),
	}
	seen := map[string]bool{}

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			x := o.X / tileW
			z := o.Y / tileH
			switch og.Name {
			case GroupHands:
				data.Hands = append(data.Hands, HandSpawn{
					Index:      o.Properties.GetInt("handIndex"),
					X:          x,
					Z:          z,
					Bot:        o.Properties.GetBool("bot"),
					Difficulty: o.Properties.GetString("difficulty"),
				})
			case GroupPickables:
				resource := o.Properties.GetString("resource")
				if resource != "" && !seen[resource] {
					seen[resource] = true
					data.Resources = append(data.Resources, resource)
				}
				data.Pickables = append(data.Pickables, PickableSpawn{
					X:            x,
					Y:            o.Properties.GetFloat("height"),
					Z:            z,
					ResourceType: resource,
					Weather:      o.Properties.GetBool("weather"),
					CarryLerp:    o.Properties.GetFloat("carryLerp"),
				})
			case GroupMiracleTokens:
				data.MiracleTokens = append(data.MiracleTokens, TokenSpawn{
					X:       x,
					Y:       o.Properties.GetFloat("height"),
					Z:       z,
					Miracle: o.Properties.GetString("miracle"),
				})
			}
		}
	}

	sort.SliceStable(data.Hands, func(i, j int) bool {
		return data.Hands[i].Index < data.Hands[j].Index
	})

	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each,
// and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*LevelData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
