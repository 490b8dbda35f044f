package arena

import "math"

// MoveResult records what happened to one robot during a tick's movement
// phase, for the tick log's action record.
type MoveResult struct {
	Attempted      bool
	HitBoundary    bool
	BlockedByRobot bool
	BoostIgnited   bool
}

// rotate applies this tick's turn command to self's heading, penalized by
// 0.5x while firing, per spec §4.5.
func rotate(self *RobotState, turn float64, fire bool) {
	if !self.Alive {
		return
	}
	penalty := 1.0
	if fire {
		penalty = FirePenalty
	}
	turnRateRad := TurnDegreesPerSec * math.Pi / 180
	self.Heading = normalizeHeading(self.Heading + turn*turnRateRad*penalty*dt)
}

func normalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// linearDelta computes this tick's robot-frame throttle/strafe movement in
// world coordinates, per spec §4.5.
func linearDelta(self *RobotState, throttle, strafe float64, fire bool) (dx, dy float64, attempted bool) {
	penalty := 1.0
	if fire {
		penalty = FirePenalty
	}

	speed := forwardSpeedBase
	if throttle < 0 {
		speed = backwardSpeedBase
	}

	forwardComp := throttle * speed * penalty * dt
	strafeComp := strafe * strafeSpeedBase * penalty * dt

	hux, huy := self.headingUnit()
	rux, ruy := self.rightUnit()

	dx = forwardComp*hux + strafeComp*rux
	dy = forwardComp*huy + strafeComp*ruy
	attempted = throttle != 0 || strafe != 0
	return
}

// resolveMovement clamps both robots' proposed moves to the arena bounds,
// then reverts any attempting actor whose proposed position would bring
// the pair within 2*RobotCollisionRadius of each other, per spec §4.5.
func resolveMovement(a, b *RobotState, daX, daY float64, aAttempted bool, dbX, dbY float64, bAttempted bool, arenaSize int) (MoveResult, MoveResult) {
	maxCoord := float64(arenaSize - 1)
	startAX, startAY := a.X, a.Y
	startBX, startBY := b.X, b.Y

	rawAX, rawAY := startAX+daX, startAY+daY
	propAX, propAY := clamp(rawAX, 0, maxCoord), clamp(rawAY, 0, maxCoord)
	hitBoundaryA := propAX != rawAX || propAY != rawAY

	rawBX, rawBY := startBX+dbX, startBY+dbY
	propBX, propBY := clamp(rawBX, 0, maxCoord), clamp(rawBY, 0, maxCoord)
	hitBoundaryB := propBX != rawBX || propBY != rawBY

	blockedA, blockedB := false, false
	if a.Alive && b.Alive {
		dist := math.Hypot(propAX-propBX, propAY-propBY)
		if dist < 2*RobotCollisionRadius {
			if aAttempted {
				propAX, propAY = startAX, startAY
				blockedA = true
			}
			if bAttempted {
				propBX, propBY = startBX, startBY
				blockedB = true
			}
		}
	}

	a.X, a.Y = propAX, propAY
	b.X, b.Y = propBX, propBY

	return MoveResult{Attempted: aAttempted, HitBoundary: hitBoundaryA, BlockedByRobot: blockedA},
		MoveResult{Attempted: bAttempted, HitBoundary: hitBoundaryB, BlockedByRobot: blockedB}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
