package arena

import "github.com/fight-club/battlearena/internal/script"

// decrementBoostCooldown applies the saturating per-tick cooldown decay.
func decrementBoostCooldown(self *RobotState) {
	if self.Boost.CooldownTicks > 0 {
		self.Boost.CooldownTicks--
	}
}

// regenEnergy applies the per-tick energy regeneration, clamped to 100.
func regenEnergy(self *RobotState) {
	self.Energy += EnergyRegenPerSecond * dt
	if self.Energy > EnergyMax {
		self.Energy = EnergyMax
	}
}

// stepBoost advances self's side-boost state machine by one tick: it may
// ignite a new burst (if wanted and eligible) and/or consume the next force
// level of an in-progress burst. Returns the world-frame lateral delta this
// tick contributes, whether that delta was attempted (non-zero, subject to
// collision reversion), and whether a burst ignited this tick.
func stepBoost(self *RobotState, wanted bool, dir script.BoostDirection) (dx, dy float64, attempted, ignited bool) {
	if self.Boost.BurstRemaining == 0 && wanted &&
		self.Boost.CooldownTicks == 0 && self.Energy >= SideBoostEnergyCost {
		self.Energy -= SideBoostEnergyCost
		self.Boost.CooldownTicks = SideBoostCooldownTicks
		self.Boost.BurstRemaining = SideBoostBurstTicks
		self.Boost.LockedDirection = dir
		self.Boost.locked = true
		ignited = true
	}

	if self.Boost.BurstRemaining == 0 {
		return 0, 0, false, ignited
	}

	idx := SideBoostBurstTicks - self.Boost.BurstRemaining
	level := boostForceSequence[idx]
	lateralTiles := level / StrafeTicksPerTile

	rux, ruy := self.rightUnit()
	sign := 1.0
	if self.Boost.LockedDirection == script.BoostLeft {
		sign = -1.0
	}

	dx = sign * rux * lateralTiles
	dy = sign * ruy * lateralTiles
	attempted = true

	self.Boost.BurstRemaining--
	if self.Boost.BurstRemaining == 0 {
		self.Boost.locked = false
	}

	return dx, dy, attempted, ignited
}
