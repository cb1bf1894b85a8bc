package messages

// HandInput is sent from client to server each frame with the hand's raw
// input, the client's hover raycast and the affordances it resolved for the
// hovered target. Entity references are esync network ids, 0 for none.
type HandInput struct {
	Sequence uint32 // Incrementing ID, stale inputs are dropped

	RayOrigin    [3]float64
	RayDirection [3]float64

	Primary    bool
	Secondary  bool
	Modifier   bool
	ReleaseOne bool
	ReleaseAll bool

	StartSelect  bool
	ConfirmPlace bool
	CancelAction bool

	HoverTarget   uint
	HoverPosition [3]float64
	HoverNormal   [3]float64
	HoverDistance float64
	HoverValid    bool

	Affordances      uint32
	AffordanceTarget uint
	AffordanceType   string // catalog resource id, "" when unspecified

	SelectedSlot int
}
