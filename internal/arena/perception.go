package arena

import "math"

// EnemyPerception is the opponent-relative geometry visible this tick.
type EnemyPerception struct {
	DX, DY   float64
	Distance float64
	Band     string // "near" (<=2), "mid" (<=4), "far"
	Bearing  string // FRONT, FRONT_LEFT, FRONT_RIGHT
	Heading  float64
}

// WallRay is one cast ray's result: distance to the boundary, the hit
// point, and which side of the arena it struck.
type WallRay struct {
	Distance float64
	HitX     float64
	HitY     float64
	Side     string // N, E, S, W
}

// WallPerception bundles the four heading-relative rays, the nearest one,
// and the two sight-arc edge rays at heading +/- pi/3.
type WallPerception struct {
	Ahead, Left, Right, Back WallRay
	Nearest                  WallRay
	SightArcLeft             WallRay
	SightArcRight            WallRay
}

// Perception is what one robot observes at a single instant: the snapshot
// it is computed from is never mutated by it.
type Perception struct {
	EnemyVisible bool
	Enemy        *EnemyPerception
	Wall         WallPerception
}

// computePerception builds self's perception of opponent, given the current
// arena size. It performs no mutation and allocates only the (possibly nil)
// *EnemyPerception.
func computePerception(self, opponent *RobotState, arenaSize int) Perception {
	p := Perception{
		Wall: computeWallPerception(self, arenaSize),
	}

	if !opponent.Alive {
		return p
	}

	dx := opponent.X - self.X
	dy := opponent.Y - self.Y
	distance := math.Hypot(dx, dy)

	if distance > VisionRadius {
		return p
	}

	hux, huy := self.headingUnit()
	rux, ruy := self.rightUnit()

	forward := dx*hux + dy*huy
	if forward <= 0 {
		return p
	}

	lateral := dx*rux + dy*ruy

	const eps = 1e-9
	denom := math.Max(eps, forward)
	angle := math.Atan2(math.Abs(lateral), denom)
	if angle > VisionHalfAngle {
		return p
	}

	band := "far"
	switch {
	case distance <= 2:
		band = "near"
	case distance <= 4:
		band = "mid"
	}

	bearing := "FRONT"
	switch {
	case lateral > 0.75:
		bearing = "FRONT_RIGHT"
	case lateral < -0.75:
		bearing = "FRONT_LEFT"
	}

	p.EnemyVisible = true
	p.Enemy = &EnemyPerception{
		DX:       dx,
		DY:       dy,
		Distance: distance,
		Band:     band,
		Bearing:  bearing,
		Heading:  opponent.Heading,
	}
	return p
}

func computeWallPerception(self *RobotState, arenaSize int) WallPerception {
	hux, huy := self.headingUnit()
	rux, ruy := self.rightUnit()

	ahead := castWallRay(self.X, self.Y, hux, huy, arenaSize)
	right := castWallRay(self.X, self.Y, rux, ruy, arenaSize)
	left := castWallRay(self.X, self.Y, -rux, -ruy, arenaSize)
	back := castWallRay(self.X, self.Y, -hux, -huy, arenaSize)

	nearest := ahead
	for _, r := range []WallRay{left, right, back} {
		if r.Distance < nearest.Distance {
			nearest = r
		}
	}

	leftArcAngle := self.Heading - VisionHalfAngle
	rightArcAngle := self.Heading + VisionHalfAngle
	sightLeft := castWallRay(self.X, self.Y, math.Cos(leftArcAngle), math.Sin(leftArcAngle), arenaSize)
	sightRight := castWallRay(self.X, self.Y, math.Cos(rightArcAngle), math.Sin(rightArcAngle), arenaSize)

	return WallPerception{
		Ahead:         ahead,
		Left:          left,
		Right:         right,
		Back:          back,
		Nearest:       nearest,
		SightArcLeft:  sightLeft,
		SightArcRight: sightRight,
	}
}

// castWallRay casts a ray from (x0, y0) along unit direction (dx, dy) until
// it crosses one of the four arena boundaries, returning the nearest
// positive intersection.
func castWallRay(x0, y0, dx, dy float64, arenaSize int) WallRay {
	max := float64(arenaSize - 1)
	best := math.Inf(1)
	side := ""

	consider := func(t float64, s string) {
		if t > 1e-9 && t < best {
			best = t
			side = s
		}
	}

	if dx < 0 {
		consider((0-x0)/dx, "W")
	} else if dx > 0 {
		consider((max-x0)/dx, "E")
	}
	if dy < 0 {
		consider((0-y0)/dy, "N")
	} else if dy > 0 {
		consider((max-y0)/dy, "S")
	}

	if math.IsInf(best, 1) {
		return WallRay{Distance: 0, HitX: x0, HitY: y0, Side: ""}
	}

	return WallRay{
		Distance: best,
		HitX:     x0 + dx*best,
		HitY:     y0 + dy*best,
		Side:     side,
	}
}
