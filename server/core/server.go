package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/server/journal"
	"github.com/automoto/godhand/shared/leveldata"
	"github.com/automoto/godhand/shared/messages"
	"github.com/automoto/godhand/systems"
	"github.com/automoto/godhand/systems/factory"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Options configures a Server.
type Options struct {
	TickRate int
	Name     string
	Version  string // required client version, empty accepts any
	MaxHands int    // 0 = unlimited

	Level *leveldata.LevelData // nil starts an empty sandbox

	JournalDir string // record every tick here; empty disables recording
	ReplayPath string // play this journal back instead of simulating

	Networked bool // sync hands and objects to websocket clients
}

// Server owns the simulation world and the client connections.
type Server struct {
	ecs       *ecs.ECS
	world     donburi.World
	loop      *GameLoop
	opts      Options
	sessionID string

	transport *transports.WsServerTransport
	journal   *journal.Writer
	replay    *journal.Reader

	stepMu sync.Mutex // serializes ticks with Close

	mu            sync.Mutex
	clientHands   map[*router.NetworkClient]donburi.Entity
	pendingJoins  []pendingJoin
	pendingLeaves []*router.NetworkClient
	inputs        map[*router.NetworkClient]*clientInput
	nextHandIndex int
}

type pendingJoin struct {
	client *router.NetworkClient
	req    messages.JoinRequest
}

// NewServer builds the world, spawns the level and wires the systems.
func NewServer(opts Options) (*Server, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.Sim.TickRate
	}
	world := donburi.NewWorld()
	s := &Server{
		ecs:         ecs.NewECS(world),
		world:       world,
		opts:        opts,
		sessionID:   uuid.New().String(),
		clientHands: make(map[*router.NetworkClient]donburi.Entity),
		inputs:      make(map[*router.NetworkClient]*clientInput),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	if opts.Networked {
		srvsync.UseEsync(world)
	}

	factory.CreateClock(s.ecs, 1/float64(opts.TickRate))
	factory.CreateSpace(s.ecs)
	factory.CreateTelemetry(s.ecs)

	levelName := ""
	if opts.Level != nil {
		levelName = opts.Level.Name
		if err := s.spawnLevel(opts.Level); err != nil {
			return nil, err
		}
	} else {
		factory.CreateCatalog(s.ecs)
	}

	switch {
	case opts.ReplayPath != "":
		r, err := journal.Open(opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		if r.Header().TickRate != opts.TickRate {
			log.Printf("[server] journal was recorded at %d ticks/s, playing at %d", r.Header().TickRate, opts.TickRate)
		}
		s.replay = r
		s.setClockMode(cfg.ClockPlayback)
	case opts.JournalDir != "":
		w, err := journal.Create(opts.JournalDir, s.sessionID, opts.TickRate, levelName)
		if err != nil {
			return nil, err
		}
		s.journal = w
		log.Printf("[server] recording session %s to %s", s.sessionID, w.Path())
	}

	s.registerSystems()
	if opts.Networked {
		s.setupRouterCallbacks()
	}
	return s, nil
}

func (s *Server) registerSystems() {
	s.ecs.AddSystem(s.applyNetwork)
	s.ecs.AddSystem(s.playbackTick)
	s.ecs.AddSystem(systems.UpdateHandBots)
	s.ecs.AddSystem(systems.UpdateHands)
	s.ecs.AddSystem(systems.ApplyReplayCommands)
	s.ecs.AddSystem(s.recordTick)
	s.ecs.AddSystem(updateBodies)
	s.ecs.AddSystem(systems.UpdateObjects)
	s.ecs.AddSystem(systems.UpdateHandTelemetry)
	s.ecs.AddSystem(systems.UpdateNetHands)
	s.ecs.AddSystem(s.broadcastHandEvents)
	s.ecs.AddSystem(systems.AdvanceClock)
}

// Start runs the game loop and, when networked, the websocket transport.
// It blocks until the transport stops or, offline, until Stop is called.
func (s *Server) Start(port uint) error {
	if !s.opts.Networked {
		s.loop.Run()
		return nil
	}
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the loop and flushes the journal.
func (s *Server) Stop() error {
	s.loop.Stop()
	return s.Close()
}

// Close releases the journal files without touching the loop.
func (s *Server) Close() error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	var errs []error
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
		s.journal = nil
	}
	if s.replay != nil {
		errs = append(errs, s.replay.Close())
		s.replay = nil
	}
	return errors.Join(errs...)
}

// Step advances the simulation by one tick.
func (s *Server) Step() {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	s.ecs.Update()
}

// AddHand spawns a hand at the next free index.
func (s *Server) AddHand() *donburi.Entry {
	s.mu.Lock()
	idx := s.nextHandIndex
	s.nextHandIndex++
	s.mu.Unlock()
	return factory.CreateHand(s.ecs, idx, cfg.Hand)
}

// ECS returns the server's ECS.
func (s *Server) ECS() *ecs.ECS {
	return s.ecs
}

// SessionID identifies this run in journals and metrics.
func (s *Server) SessionID() string {
	return s.sessionID
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// HandCount returns the number of connected client hands
func (s *Server) HandCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clientHands)
}

func (s *Server) setClockMode(mode cfg.ClockMode) {
	if e, ok := components.Clock.First(s.world); ok {
		components.Clock.Get(e).Mode = mode
	}
}

func (s *Server) clock() *components.ClockData {
	e, ok := components.Clock.First(s.world)
	if !ok {
		return nil
	}
	return components.Clock.Get(e)
}

// recordTick appends the hand pass output to the journal.
func (s *Server) recordTick(e *ecs.ECS) {
	clock := s.clock()
	if s.journal == nil || clock == nil || !clock.Recording() {
		return
	}
	rec := journal.TickRecord{
		Tick:  clock.Tick,
		Hands: systems.CaptureHandRecords(e.World),
	}
	if err := s.journal.Append(rec); err != nil {
		log.Printf("[server] journal write failed, recording stopped: %v", err)
		_ = s.journal.Close()
		s.journal = nil
	}
}

// playbackTick feeds the next journal record to the hands.
func (s *Server) playbackTick(e *ecs.ECS) {
	clock := s.clock()
	if s.replay == nil || clock == nil || clock.Mode != cfg.ClockPlayback {
		return
	}
	rec, err := s.replay.Next()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Printf("[server] journal read failed: %v", err)
		} else {
			log.Printf("[server] playback finished at tick %d", clock.Tick)
		}
		_ = s.replay.Close()
		s.replay = nil
		return
	}
	if rec.Tick != clock.Tick {
		log.Printf("[server] journal tick %d played at clock tick %d", rec.Tick, clock.Tick)
	}
	s.ensureHands(rec.Hands)
	systems.InjectReplayCommands(e.World, rec.Hands)
}

// ensureHands creates any hand a journal record refers to that the world
// does not have yet.
func (s *Server) ensureHands(records []components.HandRecord) {
	have := map[int]bool{}
	components.Hand.Each(s.world, func(e *donburi.Entry) {
		have[components.Hand.Get(e).HandIndex] = true
	})
	for _, r := range records {
		if have[r.HandIndex] {
			continue
		}
		factory.CreateHand(s.ecs, r.HandIndex, cfg.Hand)
		have[r.HandIndex] = true
		s.mu.Lock()
		if r.HandIndex >= s.nextHandIndex {
			s.nextHandIndex = r.HandIndex + 1
		}
		s.mu.Unlock()
	}
}

// syncEntity marks an entity for network sync.
func (s *Server) syncEntity(entry *donburi.Entry, comps ...donburi.IComponentType) error {
	if !s.opts.Networked {
		return nil
	}
	entity := entry.Entity()
	if err := srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(comps...)); err != nil {
		return fmt.Errorf("network sync: %w", err)
	}
	return nil
}

func networkID(entry *donburi.Entry) uint {
	if entry == nil || !entry.Valid() {
		return 0
	}
	if nid := esync.GetNetworkId(entry); nid != nil {
		return uint(*nid)
	}
	return 0
}
