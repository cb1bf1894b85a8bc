package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/automoto/godhand/assets"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/network"
	"github.com/automoto/godhand/shared/leveldata"
	"github.com/automoto/godhand/shared/protocol"
)

// joinTimeout bounds how long the client waits for the server's reply.
const joinTimeout = 10 * time.Second

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address (host:port)")
	name := flag.String("name", "probe", "Player name sent with the join request")
	version := flag.String("version", "", "Client version sent with the join request")
	levelName := flag.String("level", "sandbox", "Level the server is running, used to script the hand")
	assetsDir := flag.String("assets", "", "Directory holding levels/ (empty uses the embedded levels)")
	duration := flag.Duration("duration", 0, "Disconnect after this long (0 runs until interrupted)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	var fsys fs.FS = assets.FS()
	if *assetsDir != "" {
		fsys = os.DirFS(*assetsDir)
	}
	levels, _, err := leveldata.LoadAllLevels(fsys, assets.LevelsDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	level, ok := levels[*levelName]
	if !ok {
		log.Fatalf("Unknown level %q", *levelName)
	}

	client := network.NewClient()
	client.Connect(*addr, *version, *name)
	defer client.Disconnect()

	deadline := time.Now().Add(joinTimeout)
	for client.State() != network.StateJoined {
		if client.State() == network.StateError {
			log.Fatalf("[client] %v", client.LastError())
		}
		if time.Now().After(deadline) {
			log.Fatalf("[client] no join reply from %s after %s", *addr, joinTimeout)
		}
		time.Sleep(50 * time.Millisecond)
	}

	joined := client.Joined()
	tickRate := joined.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Sim.TickRate
	}
	dt := 1 / float64(tickRate)
	script := network.NewScript(level)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var stop <-chan time.Time
	if *duration > 0 {
		stop = time.After(*duration)
	}

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			log.Println("[client] interrupted")
			return
		case <-stop:
			log.Printf("[client] done: %d rounds, %d snapshots", script.Cycles, client.Snapshots())
			return
		case <-ticker.C:
		}

		if client.State() != network.StateJoined {
			log.Printf("[client] connection lost (%s)", client.State())
			return
		}
		if err := client.SendInput(script.Next(dt)); err != nil {
			log.Printf("[client] send input: %v", err)
		}

		for _, evt := range client.DrainStateEvents() {
			if evt.HandNetworkID == uint(joined.NetworkID) {
				log.Printf("[client] hand %s -> %s (type %d, amount %.1f)", evt.From, evt.To, evt.ResourceType, evt.Amount)
			}
		}
		for _, evt := range client.DrainThrowEvents() {
			log.Printf("[client] hand %d threw object %d at %.1f m/s (charge %.2f)",
				evt.HandNetworkID, evt.ObjectNetworkID, evt.Speed, evt.ChargeLevel)
		}
		for _, evt := range client.DrainMiracleEvents() {
			log.Printf("[client] hand %d cast %s at (%.1f, %.1f, %.1f)",
				evt.HandNetworkID, evt.Miracle, evt.X, evt.Y, evt.Z)
		}
	}
}
