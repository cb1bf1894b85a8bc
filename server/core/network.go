package core

import (
	"log"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/messages"
	"github.com/automoto/godhand/shared/netcomponents"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// clientInput is the newest input a client sent plus the held buttons of
// the last applied one, for release edges.
type clientInput struct {
	latest        messages.HandInput
	fresh         bool
	prevPrimary   bool
	prevSecondary bool
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("Client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("Client %s disconnected", client.Id())
		}
		s.mu.Lock()
		s.pendingLeaves = append(s.pendingLeaves, client)
		s.mu.Unlock()
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.mu.Lock()
		s.pendingJoins = append(s.pendingJoins, pendingJoin{client: client, req: req})
		s.mu.Unlock()
	})

	router.On(func(client *router.NetworkClient, input messages.HandInput) {
		s.mu.Lock()
		defer s.mu.Unlock()
		ci, ok := s.inputs[client]
		if !ok {
			return
		}
		if input.Sequence <= ci.latest.Sequence && ci.latest.Sequence != 0 {
			return
		}
		ci.latest = input
		ci.fresh = true
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

// applyNetwork handles joins, leaves and inputs queued by the router
// goroutines. It runs first in the tick so the world is only touched from
// the loop.
func (s *Server) applyNetwork(e *ecs.ECS) {
	s.mu.Lock()
	joins := s.pendingJoins
	leaves := s.pendingLeaves
	s.pendingJoins = nil
	s.pendingLeaves = nil
	s.mu.Unlock()

	for _, j := range joins {
		s.acceptJoin(j)
	}
	for _, c := range leaves {
		s.removeClient(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for client, entity := range s.clientHands {
		ci := s.inputs[client]
		if ci == nil || !s.world.Valid(entity) {
			continue
		}
		applyClientInput(s.world, s.world.Entry(entity), ci)
	}
}

func (s *Server) acceptJoin(j pendingJoin) {
	if s.opts.Version != "" && j.req.Version != s.opts.Version {
		s.send(j.client, messages.JoinRejected{Reason: "version mismatch"})
		return
	}
	if s.opts.MaxHands > 0 && s.HandCount() >= s.opts.MaxHands {
		s.send(j.client, messages.JoinRejected{Reason: "server full"})
		return
	}

	hand := s.AddHand()
	hand.AddComponent(netcomponents.NetHand)
	if err := s.syncEntity(hand, netcomponents.NetHand); err != nil {
		log.Printf("Failed to setup network sync for hand: %v", err)
		s.world.Remove(hand.Entity())
		return
	}

	s.mu.Lock()
	s.clientHands[j.client] = hand.Entity()
	s.inputs[j.client] = &clientInput{}
	s.mu.Unlock()

	accepted := messages.JoinAccepted{
		HandIndex:  components.Hand.Get(hand).HandIndex,
		SessionID:  s.sessionID,
		ServerName: s.opts.Name,
		TickRate:   s.opts.TickRate,
		Resources:  s.resourceNames(),
	}
	if nid := esync.GetNetworkId(hand); nid != nil {
		accepted.NetworkID = *nid
	}
	s.send(j.client, accepted)
	log.Printf("Hand %d spawned for client %s (%s)", accepted.HandIndex, j.client.Id(), j.req.PlayerName)
}

// removeClient drops a client's hand and hands anything it carried back to
// physics.
func (s *Server) removeClient(client *router.NetworkClient) {
	s.mu.Lock()
	entity, exists := s.clientHands[client]
	delete(s.clientHands, client)
	delete(s.inputs, client)
	s.mu.Unlock()

	if !exists || !s.world.Valid(entity) {
		return
	}
	releaseOwned(s.world, entity)
	s.world.Remove(entity)
	log.Printf("Hand entity removed for client %s", client.Id())
}

// releaseOwned detaches every object held or queued by hand and restores
// its gravity.
func releaseOwned(w donburi.World, hand donburi.Entity) {
	var owned []*donburi.Entry
	components.Pickable.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Held) && components.Held.Get(e).Hand == hand {
			owned = append(owned, e)
		} else if e.HasComponent(components.Queued) && components.Queued.Get(e).Hand == hand {
			owned = append(owned, e)
		}
	})
	for _, e := range owned {
		if e.HasComponent(components.Held) {
			e.RemoveComponent(components.Held)
		}
		if e.HasComponent(components.Queued) {
			e.RemoveComponent(components.Queued)
		}
		if e.HasComponent(components.Body) {
			if body := components.Body.Get(e); body.Gravity <= 0 {
				body.Gravity = cfg.Sim.DefaultGravity
			}
		}
	}
}

// applyClientInput writes a client's input into its hand. One-shot fields
// only fire on the tick a new message arrives.
func applyClientInput(w donburi.World, hand *donburi.Entry, ci *clientInput) {
	in := ci.latest
	input := components.HandInput.Get(hand)
	intent := components.HandIntent.Get(hand)
	hover := components.HandHover.Get(hand)
	aff := components.HandAffordance.Get(hand)

	input.RayOrigin = mgl64.Vec3(in.RayOrigin)
	input.RayDirection = mgl64.Vec3(in.RayDirection)
	input.PrimaryHeld = in.Primary
	input.SecondaryHeld = in.Secondary
	input.ModifierHeld = in.Modifier
	input.PrimaryReleased = ci.prevPrimary && !in.Primary
	input.SecondaryReleased = ci.prevSecondary && !in.Secondary
	ci.prevPrimary = in.Primary
	ci.prevSecondary = in.Secondary

	if ci.fresh {
		input.ReleaseOne = in.ReleaseOne
		input.ReleaseAll = in.ReleaseAll
		*intent = components.HandIntentData{
			StartSelect:  in.StartSelect,
			ConfirmPlace: in.ConfirmPlace,
			CancelAction: in.CancelAction,
		}
		ci.fresh = false
	} else {
		input.ReleaseOne = false
		input.ReleaseAll = false
		*intent = components.HandIntentData{}
	}

	*hover = components.HandHoverData{
		Valid:    in.HoverValid,
		Entity:   lookupNetworkID(w, in.HoverTarget),
		Position: mgl64.Vec3(in.HoverPosition),
		Normal:   mgl64.Vec3(in.HoverNormal),
		Distance: in.HoverDistance,
	}
	if hover.Valid && hover.Entity == donburi.Null {
		hover.Valid = false
	}

	*aff = components.HandAffordanceData{
		Flags:        components.AffordanceFlags(in.Affordances),
		Target:       lookupNetworkID(w, in.AffordanceTarget),
		ResourceType: lookupResource(w, in.AffordanceType),
	}

	if hand.HasComponent(components.MiracleCaster) {
		components.MiracleCaster.Get(hand).SelectedSlot = in.SelectedSlot
	}
}

func lookupNetworkID(w donburi.World, id uint) donburi.Entity {
	if id == 0 {
		return donburi.Null
	}
	entity := esync.FindByNetworkId(w, esync.NetworkId(id))
	if !w.Valid(entity) {
		return donburi.Null
	}
	return entity
}

func lookupResource(w donburi.World, id string) int {
	if id == "" {
		return cfg.ResourceNone
	}
	e, ok := components.ResourceCatalog.First(w)
	if !ok {
		return cfg.ResourceNone
	}
	if idx, ok := components.ResourceCatalog.Get(e).Index(id); ok {
		return idx
	}
	return cfg.ResourceNone
}

func (s *Server) resourceNames() []string {
	e, ok := components.ResourceCatalog.First(s.world)
	if !ok {
		return nil
	}
	catalog := components.ResourceCatalog.Get(e)
	names := make([]string, 0, catalog.Len())
	for i := 1; i < catalog.Len(); i++ {
		names = append(names, catalog.Name(i))
	}
	return names
}

// broadcastHandEvents turns this tick's hand output into client events.
func (s *Server) broadcastHandEvents(e *ecs.ECS) {
	if !s.opts.Networked {
		return
	}
	var out []any
	netcomponents.NetHand.Each(e.World, func(hand *donburi.Entry) {
		if !hand.HasComponent(components.Hand) {
			return
		}
		handID := networkID(hand)
		for _, c := range components.HandCommands.Get(hand).Commands {
			if c.Verb != netconfig.VerbThrow {
				continue
			}
			var objID uint
			if e.World.Valid(c.Target) {
				objID = networkID(e.World.Entry(c.Target))
			}
			out = append(out, messages.ThrowEvent{
				HandNetworkID:   handID,
				ObjectNetworkID: objID,
				X:               c.Position.X(),
				Y:               c.Position.Y(),
				Z:               c.Position.Z(),
				DirX:            c.Direction.X(),
				DirY:            c.Direction.Y(),
				DirZ:            c.Direction.Z(),
				Speed:           c.Speed,
				ChargeLevel:     c.Charge,
			})
		}
		for _, m := range components.MiracleEvents.Get(hand).Events {
			out = append(out, messages.MiracleCastEvent{
				HandNetworkID: handID,
				Miracle:       m.Type.String(),
				X:             m.TargetPosition.X(),
				Y:             m.TargetPosition.Y(),
				Z:             m.TargetPosition.Z(),
				Impulse:       m.Impulse,
			})
		}
		for _, ev := range components.HandEvents.Get(hand).Events {
			if ev.Kind != components.EventStateChanged {
				continue
			}
			out = append(out, messages.HandStateChangeEvent{
				HandNetworkID: handID,
				From:          ev.From.String(),
				To:            ev.To.String(),
				ResourceType:  ev.ResourceType,
				Amount:        ev.Amount,
			})
		}
	})
	for _, msg := range out {
		s.broadcast(msg)
	}
}

func (s *Server) broadcast(msg any) {
	s.mu.Lock()
	clients := make([]*router.NetworkClient, 0, len(s.clientHands))
	for c := range s.clientHands {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.send(c, msg)
	}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("Failed to send %T to %s: %v", msg, client.Id(), err)
	}
}
