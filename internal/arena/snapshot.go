package arena

import "math"

// round4 and round2 implement the spec's fixed rounding rule: positions,
// energy, and deltas to 4 decimals; headings and distances to 2.
func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
func round2(v float64) float64 { return math.Round(v*1e2) / 1e2 }

// RobotSnapshot is an immutable, rounded view of a RobotState at a tick
// boundary, suitable for JSON interchange.
type RobotSnapshot struct {
	ID                  string  `json:"id"`
	X                   float64 `json:"x"`
	Y                   float64 `json:"y"`
	Heading             float64 `json:"heading"`
	Direction           string  `json:"direction"`
	Alive               bool    `json:"alive"`
	Energy              float64 `json:"energy"`
	FireCooldown        int     `json:"fireCooldown"`
	BoostCooldown       int     `json:"boostCooldown"`
	BoostBurstRemaining int     `json:"boostBurstRemaining"`
}

func snapshotRobot(r *RobotState) RobotSnapshot {
	return RobotSnapshot{
		ID:                  r.ID.String(),
		X:                   round4(r.X),
		Y:                   round4(r.Y),
		Heading:             round2(selfHeadingDegrees(r.Heading)),
		Direction:           cardinalDirection(r.Heading),
		Alive:               r.Alive,
		Energy:              round4(r.Energy),
		FireCooldown:        r.FireCooldown,
		BoostCooldown:       r.Boost.CooldownTicks,
		BoostBurstRemaining: r.Boost.BurstRemaining,
	}
}

// WallRaySnapshot is a rounded view of one cast wall ray.
type WallRaySnapshot struct {
	Distance float64 `json:"distance"`
	HitX     float64 `json:"hitX"`
	HitY     float64 `json:"hitY"`
	Side     string  `json:"side"`
}

func snapshotWallRay(r WallRay) WallRaySnapshot {
	return WallRaySnapshot{
		Distance: round2(r.Distance),
		HitX:     round4(r.HitX),
		HitY:     round4(r.HitY),
		Side:     r.Side,
	}
}

// WallPerceptionSnapshot is a rounded view of WallPerception.
type WallPerceptionSnapshot struct {
	Ahead         WallRaySnapshot `json:"ahead"`
	Left          WallRaySnapshot `json:"left"`
	Right         WallRaySnapshot `json:"right"`
	Back          WallRaySnapshot `json:"back"`
	Nearest       WallRaySnapshot `json:"nearest"`
	SightArcLeft  WallRaySnapshot `json:"sightArcLeft"`
	SightArcRight WallRaySnapshot `json:"sightArcRight"`
}

// EnemyPerceptionSnapshot is a rounded view of EnemyPerception.
type EnemyPerceptionSnapshot struct {
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Distance float64 `json:"distance"`
	Band     string  `json:"band"`
	Bearing  string  `json:"bearing"`
	Heading  float64 `json:"heading"`
}

// PerceptionSnapshot is an immutable, rounded view of Perception.
type PerceptionSnapshot struct {
	EnemyVisible bool                     `json:"enemyVisible"`
	Enemy        *EnemyPerceptionSnapshot `json:"enemy,omitempty"`
	Wall         WallPerceptionSnapshot   `json:"wall"`
}

func snapshotPerception(p Perception) PerceptionSnapshot {
	out := PerceptionSnapshot{
		EnemyVisible: p.EnemyVisible,
		Wall: WallPerceptionSnapshot{
			Ahead:         snapshotWallRay(p.Wall.Ahead),
			Left:          snapshotWallRay(p.Wall.Left),
			Right:         snapshotWallRay(p.Wall.Right),
			Back:          snapshotWallRay(p.Wall.Back),
			Nearest:       snapshotWallRay(p.Wall.Nearest),
			SightArcLeft:  snapshotWallRay(p.Wall.SightArcLeft),
			SightArcRight: snapshotWallRay(p.Wall.SightArcRight),
		},
	}
	if p.Enemy != nil {
		out.Enemy = &EnemyPerceptionSnapshot{
			DX:       round4(p.Enemy.DX),
			DY:       round4(p.Enemy.DY),
			Distance: round2(p.Enemy.Distance),
			Band:     p.Enemy.Band,
			Bearing:  p.Enemy.Bearing,
			Heading:  round2(p.Enemy.Heading * 180 / math.Pi),
		}
	}
	return out
}

// ProjectileTraceSnapshot is a rounded, JSON-friendly view of a
// ProjectileTrace.
type ProjectileTraceSnapshot struct {
	ShooterID string  `json:"shooterId"`
	TargetID  string  `json:"targetId"`
	FromX     float64 `json:"fromX"`
	FromY     float64 `json:"fromY"`
	ToX       float64 `json:"toX"`
	ToY       float64 `json:"toY"`
	Direction string  `json:"direction"`
	Hit       bool    `json:"hit"`
}

func snapshotTrace(t ProjectileTrace) ProjectileTraceSnapshot {
	return ProjectileTraceSnapshot{
		ShooterID: t.ShooterID.String(),
		TargetID:  t.TargetID.String(),
		FromX:     round4(t.FromX),
		FromY:     round4(t.FromY),
		ToX:       round4(t.ToX),
		ToY:       round4(t.ToY),
		Direction: t.Direction,
		Hit:       t.Hit,
	}
}

// ActionRecord captures one robot's contribution to a single tick, for
// replay and debugging.
type ActionRecord struct {
	RobotID           string                   `json:"robotId"`
	Throttle          float64                  `json:"throttle"`
	Strafe            float64                  `json:"strafe"`
	Turn              float64                  `json:"turn"`
	Fire              bool                     `json:"fire"`
	BoostRequested    bool                     `json:"boostRequested"`
	BoostDirection    string                   `json:"boostDirection,omitempty"`
	BoostIgnited      bool                     `json:"boostIgnited"`
	RotationDeltaDeg  float64                  `json:"rotationDeltaDeg"`
	HitBoundary       bool                     `json:"hitBoundary"`
	BlockedByRobot    bool                     `json:"blockedByRobot"`
	FireSpawned       bool                     `json:"fireSpawned"`
	FireBlockedReason string                   `json:"fireBlockedReason,omitempty"`
	ProjectileTrace   *ProjectileTraceSnapshot `json:"projectileTrace,omitempty"`
	MatchedLines      []int                    `json:"matchedLines,omitempty"`
	Details           string                   `json:"details"`
}

// TickLog is the full record of one simulated tick.
type TickLog struct {
	Tick            int                       `json:"tick"`
	StartSnapshot   [2]RobotSnapshot          `json:"startSnapshot"`
	StartPerception [2]PerceptionSnapshot     `json:"startPerception"`
	Actions         [2]ActionRecord           `json:"actions"`
	ProjectileTraces []ProjectileTraceSnapshot `json:"projectileTraces"`
	EndSnapshot     [2]RobotSnapshot          `json:"endSnapshot"`
	EndPerception   [2]PerceptionSnapshot     `json:"endPerception"`
}

// BoostSegment is one robot's boost-induced displacement this tick, for
// replay rendering.
type BoostSegment struct {
	RobotID string  `json:"robotId"`
	FromX   float64 `json:"fromX"`
	FromY   float64 `json:"fromY"`
	ToX     float64 `json:"toX"`
	ToY     float64 `json:"toY"`
}

// ActionHint is a short, renderer-facing summary of one robot's action this
// tick.
type ActionHint struct {
	RobotID string `json:"robotId"`
	Action  string `json:"action"`
	Event   string `json:"event,omitempty"`
	Boosted bool   `json:"boosted"`
}

// ReplayFrame is one pre-rendered frame of the battle, indexed 0 (initial)
// through maxTicks.
type ReplayFrame struct {
	Tick             int                       `json:"tick"`
	Snapshot         [2]RobotSnapshot          `json:"snapshot"`
	ProjectileTraces []ProjectileTraceSnapshot `json:"projectileTraces"`
	BoostSegments    []BoostSegment            `json:"boostSegments"`
	ActionHints      []ActionHint              `json:"actionHints"`
	FrameRate        int                       `json:"frameRate"`
}

// BattleResult is the authoritative interchange format returned by
// Simulate: config echo, initial/final snapshots and perceptions, the full
// tick log, and pre-rendered replay frames.
type BattleResult struct {
	ArenaSize int `json:"arenaSize"`
	MaxTicks  int `json:"maxTicks"`

	InitialSnapshot   [2]RobotSnapshot      `json:"initialSnapshot"`
	FinalSnapshot     [2]RobotSnapshot      `json:"finalSnapshot"`
	InitialPerception [2]PerceptionSnapshot `json:"initialPerception"`
	FinalPerception   [2]PerceptionSnapshot `json:"finalPerception"`

	Ticks        []TickLog     `json:"ticks"`
	ReplayFrames []ReplayFrame `json:"replayFrames"`

	Status   string  `json:"status"` // "finished" or "draw"
	WinnerID *string `json:"winnerId,omitempty"`
}
