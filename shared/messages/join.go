package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a hand.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	HandIndex  int
	SessionID  string
	ServerName string
	TickRate   int
	Resources  []string // catalog ids in index order, starting at index 1
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
