package arena

import "math"

// sensorValue is a single entry in a SensorTable: a value that is either
// finite and available, or explicitly unavailable.
type sensorValue struct {
	value     float64
	available bool
}

// SensorTable maps sensor identifiers to values for one robot at one tick.
// An unavailable sensor referenced in an expression propagates unavailable
// through the whole expression, per spec §4.2.
type SensorTable struct {
	values       map[string]sensorValue
	enemyVisible bool
}

// EnemyVisible reports whether the enemy was visible in the perception this
// table was built from. Backs the ENEMY_VISIBLE condition keyword, which is
// not a numeric sensor and so is not reachable through Get.
func (t SensorTable) EnemyVisible() bool {
	return t.enemyVisible
}

// Get returns (value, true) if the sensor is available, or (0, false)
// otherwise. Unknown identifiers never reach here: the parser rejects them.
func (t SensorTable) Get(name string) (float64, bool) {
	v, ok := t.values[name]
	if !ok || !v.available {
		return 0, false
	}
	if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
		return 0, false
	}
	return v.value, true
}

func (t *SensorTable) set(name string, value float64) {
	t.values[name] = sensorValue{value: value, available: true}
}

// BuildSensorTable computes the full per-tick sensor table for self, given
// self's pre-tick perception of opponent and self's enemy memory as of the
// end of the previous tick.
func BuildSensorTable(self, opponent *RobotState, perception Perception, arenaSize int) SensorTable {
	t := SensorTable{values: make(map[string]sensorValue, 32), enemyVisible: perception.EnemyVisible}

	t.set("SELF_X", self.X)
	t.set("SELF_Y", self.Y)
	t.set("SELF_HEADING", selfHeadingDegrees(self.Heading))
	t.set("SELF_ENERGY", self.Energy)
	t.set("BOOST_COOLDOWN", float64(self.Boost.CooldownTicks))
	t.set("ARENA_SIZE", float64(arenaSize))

	mem := self.Memory
	ticksSinceSeen := mem.TicksSinceSeen
	if perception.EnemyVisible {
		ticksSinceSeen = 0
	}
	t.set("TICKS_SINCE_ENEMY_SEEN", float64(ticksSinceSeen))

	if perception.EnemyVisible {
		e := perception.Enemy
		t.set("ENEMY_X", self.X+e.DX)
		t.set("ENEMY_Y", self.Y+e.DY)
		t.set("ENEMY_HEADING", e.Heading*180/math.Pi)
		t.set("ENEMY_DX", e.DX)
		t.set("ENEMY_DY", e.DY)
		t.set("ENEMY_DISTANCE", e.Distance)
	}

	if mem.HasSighting {
		t.set("PREV_ENEMY_X", mem.PrevX)
		t.set("PREV_ENEMY_Y", mem.PrevY)
		t.set("PREV_ENEMY_HEADING", mem.PrevHeading*180/math.Pi)
		t.set("PREV_ENEMY_DX", mem.PrevDX)
		t.set("PREV_ENEMY_DY", mem.PrevDY)
		t.set("PREV_ENEMY_DISTANCE", mem.PrevDist)
	}

	if perception.EnemyVisible && mem.HasSighting {
		e := perception.Enemy
		curX, curY := self.X+e.DX, self.Y+e.DY
		t.set("ENEMY_X_DELTA", curX-mem.PrevX)
		t.set("ENEMY_Y_DELTA", curY-mem.PrevY)
		t.set("ENEMY_HEADING_DELTA", (e.Heading-mem.PrevHeading)*180/math.Pi)
		t.set("ENEMY_DX_DELTA", e.DX-mem.PrevDX)
		t.set("ENEMY_DY_DELTA", e.DY-mem.PrevDY)
		t.set("ENEMY_DISTANCE_DELTA", e.Distance-mem.PrevDist)
	}

	w := perception.Wall
	t.set("WALL_AHEAD_DISTANCE", w.Ahead.Distance)
	t.set("WALL_LEFT_DISTANCE", w.Left.Distance)
	t.set("WALL_RIGHT_DISTANCE", w.Right.Distance)
	t.set("WALL_BACK_DISTANCE", w.Back.Distance)
	t.set("WALL_NEAREST_DISTANCE", w.Nearest.Distance)

	return t
}

// selfHeadingDegrees normalizes heading (radians, 0=East, clockwise) to
// degrees in [0, 360), per spec §4.2: E=0, S=90, W=180, N=270.
func selfHeadingDegrees(headingRad float64) float64 {
	deg := math.Mod(headingRad*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// updateMemory records perception taken at the END of a tick into self's
// enemy-sighting memory, per spec §3 ("memory ... updated at end of tick
// using post-tick perception").
func updateMemory(self *RobotState, perception Perception) {
	if perception.EnemyVisible {
		e := perception.Enemy
		self.Memory.HasSighting = true
		self.Memory.PrevX = self.X + e.DX
		self.Memory.PrevY = self.Y + e.DY
		self.Memory.PrevHeading = e.Heading
		self.Memory.PrevDX = e.DX
		self.Memory.PrevDY = e.DY
		self.Memory.PrevDist = e.Distance
		self.Memory.TicksSinceSeen = 0
		return
	}

	if self.Memory.TicksSinceSeen < TicksSinceEnemySeenSentinel {
		self.Memory.TicksSinceSeen++
	}
}
