package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/godhand/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Client is a headless hand client. It joins a server, streams HandInput
// and collects the hand events the server broadcasts.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	joined    messages.JoinAccepted
	conn      *websocket.Conn
	sequence  uint32
	snapshots int

	throwCh   chan messages.ThrowEvent
	miracleCh chan messages.MiracleCastEvent
	stateCh   chan messages.HandStateChangeEvent
}

func NewClient() *Client {
	return &Client{
		state:     StateDisconnected,
		throwCh:   make(chan messages.ThrowEvent, 16),
		miracleCh: make(chan messages.MiracleCastEvent, 16),
		stateCh:   make(chan messages.HandStateChangeEvent, 32),
	}
}

// Connect dials the server in a background goroutine and sends the join
// request once the socket is up.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: hand=%d networkID=%d server=%s session=%s tickRate=%d",
			msg.HandIndex, msg.NetworkID, msg.ServerName, msg.SessionID, msg.TickRate)
		c.mu.Lock()
		c.joined = msg
		c.state = StateJoined
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, _ esync.WorldSnapshot) {
		c.mu.Lock()
		c.snapshots++
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, evt messages.ThrowEvent) {
		push(c.throwCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.MiracleCastEvent) {
		push(c.miracleCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.HandStateChangeEvent) {
		push(c.stateCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Joined returns the server's join reply, valid once State is StateJoined.
func (c *Client) Joined() messages.JoinAccepted {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.joined
}

// Snapshots is the number of world snapshots received so far.
func (c *Client) Snapshots() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshots
}

// SendInput stamps input with the next sequence number and sends it.
func (c *Client) SendInput(input messages.HandInput) error {
	c.mu.Lock()
	c.sequence++
	input.Sequence = c.sequence
	c.mu.Unlock()
	return c.SendMessage(input)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainThrowEvents returns all pending throw events, non-blocking.
func (c *Client) DrainThrowEvents() []messages.ThrowEvent {
	return drainChan(c.throwCh)
}

// DrainMiracleEvents returns all pending miracle cast events, non-blocking.
func (c *Client) DrainMiracleEvents() []messages.MiracleCastEvent {
	return drainChan(c.miracleCh)
}

// DrainStateEvents returns all pending hand state changes, non-blocking.
func (c *Client) DrainStateEvents() []messages.HandStateChangeEvent {
	return drainChan(c.stateCh)
}

// push drops the event when the buffer is full.
func push[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
