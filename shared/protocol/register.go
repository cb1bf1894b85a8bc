package protocol

import (
	"github.com/automoto/godhand/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetHand   uint = 20
	SyncIDNetObject uint = 21
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetHand   uint8 = 20
	InterpIDNetObject uint8 = 21
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetHand,
		netcomponents.NetHandData{},
		netcomponents.NetHand,
		esync.WithInterpFn(InterpIDNetHand, netcomponents.LerpNetHand),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetObject,
		netcomponents.NetObjectData{},
		netcomponents.NetObject,
		esync.WithInterpFn(InterpIDNetObject, netcomponents.LerpNetObject),
	); err != nil {
		return err
	}

	return nil
}
