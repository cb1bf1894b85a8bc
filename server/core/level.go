package core

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/godhand/assets"
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/leveldata"
	"github.com/automoto/godhand/shared/netcomponents"
	"github.com/automoto/godhand/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// spawnLevel populates the world from parsed level data. Bot hands throw
// toward the player hand spawns in turn.
func (s *Server) spawnLevel(data *leveldata.LevelData) error {
	factory.CreateCatalog(s.ecs, data.Resources...)

	for _, p := range data.Pickables {
		pos := mgl64.Vec3{p.X, p.Y, p.Z}
		var e *donburi.Entry
		if p.Weather {
			e = factory.CreateWeatherObject(s.ecs, pos, p.ResourceType)
		} else {
			e = factory.CreatePickable(s.ecs, pos, p.ResourceType, p.CarryLerp)
		}
		if err := s.syncObject(e); err != nil {
			return err
		}
	}

	for _, t := range data.MiracleTokens {
		miracle := cfg.ParseMiracleType(t.Miracle)
		if miracle == cfg.MiracleNone {
			return fmt.Errorf("level %s: unknown miracle %q", data.Name, t.Miracle)
		}
		e := factory.CreateMiracleToken(s.ecs, mgl64.Vec3{t.X, t.Y, t.Z}, miracle)
		if err := s.syncObject(e); err != nil {
			return err
		}
	}

	var drops []mgl64.Vec3
	for _, h := range data.Hands {
		if !h.Bot {
			drops = append(drops, mgl64.Vec3{h.X, 0, h.Z})
		}
	}
	for _, h := range data.Hands {
		if !h.Bot {
			continue
		}
		diff, ok := cfg.ParseBotDifficulty(h.Difficulty)
		if !ok {
			diff = cfg.BotDifficultyNormal
		}
		bot := factory.CreateBotHand(s.ecs, h.Index, diff, drops...)
		components.HandBot.Get(bot).Cursor = mgl64.Vec3{h.X, 0, h.Z}
		if h.Index >= s.nextHandIndex {
			s.nextHandIndex = h.Index + 1
		}
		if s.opts.Networked {
			bot.AddComponent(netcomponents.NetHand)
			if err := s.syncEntity(bot, netcomponents.NetHand); err != nil {
				return err
			}
		}
	}

	log.Printf("Loaded level %s: %d pickables, %d tokens, %d hand spawns, %d resource types",
		data.Name, len(data.Pickables), len(data.MiracleTokens), len(data.Hands), len(data.Resources))
	return nil
}

func (s *Server) syncObject(e *donburi.Entry) error {
	if !s.opts.Networked {
		return nil
	}
	e.AddComponent(netcomponents.NetObject)
	return s.syncEntity(e, netcomponents.NetObject)
}

// LoadAllServerLevels loads all .tmx levels under assets.LevelsDir in fsys,
// returning the parsed levels keyed by stem name plus a sorted name list.
func LoadAllServerLevels(fsys fs.FS) (map[string]*leveldata.LevelData, []string, error) {
	levels, names, err := leveldata.LoadAllLevels(fsys, assets.LevelsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}
	return levels, names, nil
}
