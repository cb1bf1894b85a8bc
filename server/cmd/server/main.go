package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/godhand/assets"
	"github.com/automoto/godhand/config"
	"github.com/automoto/godhand/server/core"
	"github.com/automoto/godhand/server/metrics"
	"github.com/automoto/godhand/shared/leveldata"
	"github.com/automoto/godhand/shared/protocol"
	"github.com/automoto/godhand/systems"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (0 = tuning default)")
	name := flag.String("name", "Godhand Sandbox", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	maxHands := flag.Int("maxhands", 8, "Maximum client hands (0 = unlimited)")
	tuningPath := flag.String("tuning", "", "YAML tuning file")
	levelName := flag.String("level", "sandbox", "Level to load (empty = bare world)")
	assetsDir := flag.String("assets", "", "Assets directory (empty = embedded levels)")
	journalDir := flag.String("journal", "", "Record a journal of every tick into this directory")
	replayPath := flag.String("replay", "", "Play back a recorded journal")
	metricsPath := flag.String("metrics", "", "SQLite file for telemetry snapshots")
	offline := flag.Bool("offline", false, "Run without the websocket transport")
	flag.Parse()

	if *tuningPath != "" {
		if err := config.LoadTuning(*tuningPath); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}
	if *tickRate <= 0 {
		*tickRate = config.Sim.TickRate
	}

	var level *leveldata.LevelData
	if *levelName != "" {
		fsys := assets.FS()
		if *assetsDir != "" {
			fsys = os.DirFS(*assetsDir)
		}
		levels, names, err := core.LoadAllServerLevels(fsys)
		if err != nil {
			log.Fatalf("Failed to load levels: %v", err)
		}
		var ok bool
		if level, ok = levels[*levelName]; !ok {
			log.Fatalf("Unknown level %q (have %v)", *levelName, names)
		}
	}

	if !*offline {
		if err := protocol.RegisterComponents(); err != nil {
			log.Fatalf("Failed to register components: %v", err)
		}
	}

	server, err := core.NewServer(core.Options{
		TickRate:   *tickRate,
		Name:       *name,
		Version:    *version,
		MaxHands:   *maxHands,
		Level:      level,
		JournalDir: *journalDir,
		ReplayPath: *replayPath,
		Networked:  !*offline,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := systems.InitPersistence("godhand"); err == nil {
		_ = systems.LoadTelemetryTotals(server.World())
	}
	systems.RegisterTelemetrySink(systems.LogSink{})
	var sink *metrics.SQLiteSink
	if *metricsPath != "" {
		sink, err = metrics.OpenSQLite(*metricsPath, server.SessionID())
		if err != nil {
			log.Fatalf("Failed to open metrics: %v", err)
		}
		systems.RegisterTelemetrySink(sink)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if err := server.Stop(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		_ = systems.SaveTelemetryTotals(server.World())
		if sink != nil {
			_ = sink.Close()
		}
		os.Exit(0)
	}()

	log.Printf("Starting %q on port %d (tick rate: %d/s, version: %s, offline: %v)",
		*name, *port, *tickRate, *version, *offline)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
