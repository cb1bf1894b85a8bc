package systems

import (
	"math"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// botRayHeight is how far above the cursor an AI hand casts its ray from.
const botRayHeight = 20.0

// minLegSeconds keeps very short route legs from finishing in zero time.
const minLegSeconds = 0.05

// grabPatience is how long a bot keeps trying to grab before seeking again.
const grabPatience = 1.0

var botEases = map[string]ease.TweenFunc{
	"Linear":     ease.Linear,
	"InOutQuad":  ease.InOutQuad,
	"InOutCubic": ease.InOutCubic,
	"OutExpo":    ease.OutExpo,
}

// UpdateHandBots writes the input and intent snapshots of AI hands. Must run
// before UpdateHands.
func UpdateHandBots(e *ecs.ECS) {
	clockEntry, ok := components.Clock.First(e.World)
	if !ok {
		return
	}
	clock := components.Clock.Get(clockEntry)
	if !clock.Recording() {
		return
	}
	components.HandBot.Each(e.World, func(entry *donburi.Entry) {
		updateHandBot(e.World, entry, clock.DeltaTime)
	})
}

func updateHandBot(w donburi.World, entry *donburi.Entry, dt float64) {
	bot := components.HandBot.Get(entry)
	hand := components.Hand.Get(entry)
	input := components.HandInput.Get(entry)
	intent := components.HandIntent.Get(entry)
	diff := botDifficulty(bot.Difficulty)

	*intent = components.HandIntentData{}
	input.SecondaryReleased = false
	input.ReleaseOne = false
	input.ReleaseAll = false
	input.PrimaryHeld = false

	switch bot.Phase {
	case components.BotSeek:
		if hand.HeldEntity != donburi.Null {
			startLeg(bot, bot.Cursor, nextDrop(bot), diff)
			bot.Phase = components.BotMoveToDrop
			break
		}
		target, pos, ok := nearestFreePickable(w, bot.Cursor)
		if !ok {
			break
		}
		bot.Target = target
		startLeg(bot, bot.Cursor, pos, diff)
		bot.Phase = components.BotMoveToPick

	case components.BotMoveToPick:
		if advanceLeg(bot, dt) {
			bot.Phase = components.BotGrab
			bot.Timer = 0
		}

	case components.BotGrab:
		bot.Timer += dt
		switch {
		case hand.HeldEntity != donburi.Null:
			startLeg(bot, bot.Cursor, nextDrop(bot), diff)
			bot.Phase = components.BotMoveToDrop
		case bot.Timer > diff.ReactionDelay+grabPatience:
			bot.Phase = components.BotSeek
		case bot.Timer >= diff.ReactionDelay:
			intent.StartSelect = true
		}

	case components.BotMoveToDrop:
		if hand.HeldEntity == donburi.Null {
			bot.Phase = components.BotSeek
			break
		}
		if advanceLeg(bot, dt) {
			bot.Phase = components.BotCharge
			bot.Timer = 0
		}

	case components.BotCharge:
		input.SecondaryHeld = true
		bot.Timer += dt
		if bot.Timer >= diff.ChargeSeconds {
			bot.Phase = components.BotRelease
		}

	case components.BotRelease:
		input.SecondaryHeld = false
		input.SecondaryReleased = true
		if len(bot.Drops) > 0 {
			bot.DropIndex = (bot.DropIndex + 1) % len(bot.Drops)
		}
		bot.Target = donburi.Null
		bot.Phase = components.BotSeek
	}

	input.RayOrigin = bot.Cursor.Add(mgl64.Vec3{0, botRayHeight, 0})
	input.RayDirection = gamemath.Down
}

func botDifficulty(d cfg.BotDifficulty) cfg.BotDifficultyConfig {
	if c, ok := cfg.Bot.Difficulties[d]; ok {
		return c
	}
	return cfg.Bot.Difficulties[cfg.BotDifficultyNormal]
}

func nextDrop(bot *components.HandBotData) mgl64.Vec3 {
	if len(bot.Drops) == 0 {
		return bot.Cursor
	}
	return bot.Drops[bot.DropIndex%len(bot.Drops)]
}

// startLeg tweens the bot cursor from one ground point to another at the
// difficulty's cursor speed.
func startLeg(bot *components.HandBotData, from, to mgl64.Vec3, diff cfg.BotDifficultyConfig) {
	from[1], to[1] = 0, 0
	seconds := minLegSeconds
	if diff.CursorSpeed > 0 {
		seconds = max(seconds, math.Sqrt(gamemath.HorizontalDistSq(from, to))/diff.CursorSpeed)
	}
	fn, ok := botEases[diff.Ease]
	if !ok {
		fn = ease.Linear
	}
	bot.From = from
	bot.To = to
	bot.Tween = gween.New(0, 1, float32(seconds), fn)
}

// advanceLeg moves the cursor along the current leg and reports whether it
// arrived.
func advanceLeg(bot *components.HandBotData, dt float64) bool {
	if bot.Tween == nil {
		bot.Cursor = bot.To
		return true
	}
	progress, done := bot.Tween.Update(float32(dt))
	bot.Cursor = gamemath.LerpVec(bot.From, bot.To, float64(progress))
	if done {
		bot.Cursor = bot.To
		bot.Tween = nil
	}
	return done
}

// nearestFreePickable scans for the closest object no hand holds or queues.
func nearestFreePickable(w donburi.World, from mgl64.Vec3) (donburi.Entity, mgl64.Vec3, bool) {
	best := donburi.Null
	var bestPos mgl64.Vec3
	bestSq := math.Inf(1)
	components.Pickable.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Held) || e.HasComponent(components.Queued) {
			return
		}
		if !e.HasComponent(components.Transform) {
			return
		}
		pos := components.Transform.Get(e).Position
		d := gamemath.HorizontalDistSq(pos, from)
		if d < bestSq || (d == bestSq && e.Entity() < best) {
			best, bestPos, bestSq = e.Entity(), pos, d
		}
	})
	return best, bestPos, best != donburi.Null
}
