package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
)

// SavedTelemetry is the lifetime state counter data stored on disk.
type SavedTelemetry struct {
	Totals map[string]uint64 `json:"totals"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence opens the gdata store used for telemetry totals.
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadTelemetryTotals restores lifetime totals into the telemetry singleton.
func LoadTelemetryTotals(w donburi.World) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}
	entry, ok := components.HandTelemetry.First(w)
	if !ok {
		return nil
	}

	data, err := gdataManager.LoadItem(cfg.Telemetry.SaveKey)
	if err != nil {
		log.Printf("Warning: Could not load telemetry: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var saved SavedTelemetry
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Warning: Could not parse saved telemetry: %v", err)
		return err
	}

	tel := components.HandTelemetry.Get(entry)
	for s := cfg.LegacyDisplayState(0); s < cfg.LegacyStateCount; s++ {
		tel.Totals[s] = saved.Totals[s.String()]
	}
	return nil
}

// SaveTelemetryTotals writes lifetime totals keyed by display state name.
func SaveTelemetryTotals(w donburi.World) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}
	entry, ok := components.HandTelemetry.First(w)
	if !ok {
		return nil
	}

	tel := components.HandTelemetry.Get(entry)
	saved := SavedTelemetry{Totals: make(map[string]uint64, cfg.LegacyStateCount)}
	for s := cfg.LegacyDisplayState(0); s < cfg.LegacyStateCount; s++ {
		saved.Totals[s.String()] = tel.Totals[s]
	}

	data, err := json.Marshal(saved)
	if err != nil {
		log.Printf("Warning: Could not serialize telemetry: %v", err)
		return err
	}
	if err := gdataManager.SaveItem(cfg.Telemetry.SaveKey, data); err != nil {
		log.Printf("Warning: Could not save telemetry: %v", err)
		return err
	}
	return nil
}
