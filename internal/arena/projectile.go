package arena

import "math"

// Projectile is one in-flight shot, grounded on the teacher's projectile
// state machine (spawn, advance-or-retire, trail) but carrying spec
// semantics: tile-unit speed, range-limited flight, point-to-segment hit
// detection against a single tracked target.
type Projectile struct {
	ShooterID       RobotID
	TargetID        RobotID
	X, Y            float64
	DirX, DirY      float64
	CardinalAtSpawn string
	Traveled        float64
	MaxRange        float64
}

// ProjectileTrace is one tick's movement segment for a projectile, included
// in both the shooter's action record and the tick-level projectile list.
type ProjectileTrace struct {
	ShooterID RobotID
	TargetID  RobotID
	FromX     float64
	FromY     float64
	ToX       float64
	ToY       float64
	Direction string
	Hit       bool
}

// spawnProjectile creates a new in-flight shot from shooter's current
// position and heading, aimed at targetID.
func spawnProjectile(shooterID, targetID RobotID, shooter *RobotState) *Projectile {
	dirX, dirY := shooter.headingUnit()
	return &Projectile{
		ShooterID:       shooterID,
		TargetID:        targetID,
		X:                shooter.X,
		Y:                shooter.Y,
		DirX:            dirX,
		DirY:            dirY,
		CardinalAtSpawn: cardinalDirection(shooter.Heading),
		MaxRange:        ShotRange,
	}
}

// advance steps the projectile one tick: it moves by min(speed*dt,
// remaining range, distance to the nearest wall), then checks for a hit
// against target's current position. Returns the segment trace and whether
// the projectile should be retired (hit, exhausted by range, or blocked by
// a wall).
func (p *Projectile) advance(target *RobotState, targetPendingKill bool, arenaSize int) (trace ProjectileTrace, retire bool) {
	fromX, fromY := p.X, p.Y
	remaining := p.MaxRange - p.Traveled
	wallDist := castWallRay(p.X, p.Y, p.DirX, p.DirY, arenaSize).Distance

	step := math.Min(projectileSpeed*dt, math.Min(remaining, wallDist))
	if step < 0 {
		step = 0
	}

	endX := p.X + p.DirX*step
	endY := p.Y + p.DirY*step

	trace = ProjectileTrace{
		ShooterID: p.ShooterID,
		TargetID:  p.TargetID,
		FromX:     fromX,
		FromY:     fromY,
		ToX:       endX,
		ToY:       endY,
		Direction: p.CardinalAtSpawn,
	}

	if target.Alive && !targetPendingKill {
		d := pointToSegmentDistance(target.X, target.Y, fromX, fromY, endX, endY)
		if d <= ShotHitRadius {
			trace.ToX, trace.ToY = target.X, target.Y
			trace.Hit = true
			return trace, true
		}
	}

	p.Traveled += step
	p.X, p.Y = endX, endY

	if p.Traveled >= p.MaxRange-1e-9 || step <= 1e-12 {
		return trace, true
	}
	return trace, false
}

// pointToSegmentDistance returns the distance from (px, py) to the closest
// point on segment (x1, y1)-(x2, y2).
func pointToSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX := x1 + t*dx
	projY := y1 + t*dy
	return math.Hypot(px-projX, py-projY)
}
