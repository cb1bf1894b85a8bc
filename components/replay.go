package components

import "github.com/automoto/godhand/config"

// HandRecord is one hand's recorded output for a tick.
type HandRecord struct {
	HandIndex int
	State     config.HandStateID
	Commands  []HandCommand
	Events    []HandEvent
	Miracles  []MiracleRelease
}
