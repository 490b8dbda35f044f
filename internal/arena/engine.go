package arena

import (
	"math"

	"github.com/fight-club/battlearena/internal/config"
	"github.com/fight-club/battlearena/internal/metrics"
	"github.com/fight-club/battlearena/internal/script"
)

// Simulate runs a deterministic battle between progA (robot A) and progB
// (robot B) under cfg, advancing logical ticks only — no wall-clock pacing,
// per spec §5. It is the core's second and final external entry point
// (alongside script.Parse). log may be nil; when non-nil, notable events
// (fires, boost ignitions, hits, deaths) are recorded into it for
// introspection tooling. log never affects the returned BattleResult, so
// Simulate's determinism guarantee (spec §8 property 6) holds regardless of
// whether a log is supplied.
func Simulate(progA, progB *script.Program, cfg config.BattleConfig, log *EventLog) (*BattleResult, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	n := cfg.ArenaSize

	a := &RobotState{ID: RobotA, Program: progA, X: 0, Y: 0, Heading: 0, Alive: true, Energy: EnergyMax}
	b := &RobotState{ID: RobotB, Program: progB, X: float64(n - 1), Y: float64(n - 1), Heading: math.Pi, Alive: true, Energy: EnergyMax}

	initPerceptionA := computePerception(a, b, n)
	initPerceptionB := computePerception(b, a, n)

	result := &BattleResult{
		ArenaSize:         n,
		MaxTicks:          cfg.MaxTicks,
		InitialSnapshot:   [2]RobotSnapshot{snapshotRobot(a), snapshotRobot(b)},
		InitialPerception: [2]PerceptionSnapshot{snapshotPerception(initPerceptionA), snapshotPerception(initPerceptionB)},
	}
	result.ReplayFrames = append(result.ReplayFrames, ReplayFrame{
		Tick:      0,
		Snapshot:  result.InitialSnapshot,
		FrameRate: replayFrameRate(),
	})

	var projectiles []*Projectile

	status := "draw"
	var winnerID *string

	for tick := 1; tick <= cfg.MaxTicks; tick++ {
		timer := metrics.StartTick()

		startSnapshot := [2]RobotSnapshot{snapshotRobot(a), snapshotRobot(b)}

		startPerceptionA := computePerception(a, b, n)
		startPerceptionB := computePerception(b, a, n)
		startPerceptionSnap := [2]PerceptionSnapshot{snapshotPerception(startPerceptionA), snapshotPerception(startPerceptionB)}

		sensorsA := BuildSensorTable(a, b, startPerceptionA, n)
		sensorsB := BuildSensorTable(b, a, startPerceptionB, n)

		csA := EvaluateRules(a.Program, sensorsA)
		csB := EvaluateRules(b.Program, sensorsB)

		headingBeforeA, headingBeforeB := a.Heading, b.Heading
		rotate(a, csA.Turn, csA.Fire)
		rotate(b, csB.Turn, csB.Fire)
		rotationDeltaA := round2(normalizeAngleSigned(a.Heading-headingBeforeA) * 180 / math.Pi)
		rotationDeltaB := round2(normalizeAngleSigned(b.Heading-headingBeforeB) * 180 / math.Pi)

		daX, daY, aAttempted, aBoostDX, aBoostDY, aBoostAttempted, aBoostIgnited := stepRobotMotionDetailed(a, csA)
		dbX, dbY, bAttempted, bBoostDX, bBoostDY, bBoostAttempted, bBoostIgnited := stepRobotMotionDetailed(b, csB)

		startForCollisionAX, startForCollisionAY := a.X, a.Y
		startForCollisionBX, startForCollisionBY := b.X, b.Y

		moveA, moveB := resolveMovement(a, b, daX, daY, aAttempted, dbX, dbY, bAttempted, n)
		moveA.BoostIgnited = aBoostIgnited
		moveB.BoostIgnited = bBoostIgnited

		fireCooldownTickDown(a)
		fireCooldownTickDown(b)

		fireSpawnedA, fireBlockedA := spawnFireIntent(a, b.ID, csA.Fire, &projectiles)
		fireSpawnedB, fireBlockedB := spawnFireIntent(b, a.ID, csB.Fire, &projectiles)

		if log != nil {
			if fireSpawnedA {
				log.Emit(Event{Type: EventFire, Tick: tick, RobotID: a.ID, Message: "projectile spawned"})
			}
			if fireSpawnedB {
				log.Emit(Event{Type: EventFire, Tick: tick, RobotID: b.ID, Message: "projectile spawned"})
			}
			if aBoostIgnited {
				log.Emit(Event{Type: EventBoostIgnite, Tick: tick, RobotID: a.ID, Message: "side boost ignited"})
			}
			if bBoostIgnited {
				log.Emit(Event{Type: EventBoostIgnite, Tick: tick, RobotID: b.ID, Message: "side boost ignited"})
			}
		}

		pendingKillA, pendingKillB := false, false
		var tickTraces []ProjectileTrace
		liveProjectiles := projectiles[:0:0]
		for _, proj := range projectiles {
			target := a
			pendingKill := pendingKillA
			if proj.TargetID == RobotB {
				target = b
				pendingKill = pendingKillB
			}
			trace, retire := proj.advance(target, pendingKill, n)
			tickTraces = append(tickTraces, trace)
			if trace.Hit {
				if proj.TargetID == RobotA {
					pendingKillA = true
				} else {
					pendingKillB = true
				}
				if log != nil {
					log.Emit(Event{Type: EventHit, Tick: tick, RobotID: proj.TargetID, Message: "hit by projectile from " + proj.ShooterID.String()})
				}
			}
			if !retire {
				liveProjectiles = append(liveProjectiles, proj)
			}
		}
		projectiles = liveProjectiles

		if pendingKillA {
			a.Alive = false
			if log != nil {
				log.Emit(Event{Type: EventDeath, Tick: tick, RobotID: a.ID, Message: "destroyed"})
			}
		}
		if pendingKillB {
			b.Alive = false
			if log != nil {
				log.Emit(Event{Type: EventDeath, Tick: tick, RobotID: b.ID, Message: "destroyed"})
			}
		}

		endPerceptionA := computePerception(a, b, n)
		endPerceptionB := computePerception(b, a, n)
		updateMemory(a, endPerceptionA)
		updateMemory(b, endPerceptionB)

		endSnapshot := [2]RobotSnapshot{snapshotRobot(a), snapshotRobot(b)}
		endPerceptionSnap := [2]PerceptionSnapshot{snapshotPerception(endPerceptionA), snapshotPerception(endPerceptionB)}

		traceSnaps := make([]ProjectileTraceSnapshot, len(tickTraces))
		for i, t := range tickTraces {
			traceSnaps[i] = snapshotTrace(t)
		}

		actionA := buildActionRecord(a.ID, csA, rotationDeltaA, moveA, fireSpawnedA, fireBlockedA, traceFor(tickTraces, a.ID))
		actionB := buildActionRecord(b.ID, csB, rotationDeltaB, moveB, fireSpawnedB, fireBlockedB, traceFor(tickTraces, b.ID))

		result.Ticks = append(result.Ticks, TickLog{
			Tick:             tick,
			StartSnapshot:    startSnapshot,
			StartPerception:  startPerceptionSnap,
			Actions:          [2]ActionRecord{actionA, actionB},
			ProjectileTraces: traceSnaps,
			EndSnapshot:      endSnapshot,
			EndPerception:    endPerceptionSnap,
		})

		var boostSegments []BoostSegment
		if aBoostAttempted {
			boostSegments = append(boostSegments, BoostSegment{
				RobotID: a.ID.String(), FromX: round4(startForCollisionAX), FromY: round4(startForCollisionAY),
				ToX: round4(startForCollisionAX + aBoostDX), ToY: round4(startForCollisionAY + aBoostDY),
			})
		}
		if bBoostAttempted {
			boostSegments = append(boostSegments, BoostSegment{
				RobotID: b.ID.String(), FromX: round4(startForCollisionBX), FromY: round4(startForCollisionBY),
				ToX: round4(startForCollisionBX + bBoostDX), ToY: round4(startForCollisionBY + bBoostDY),
			})
		}

		result.ReplayFrames = append(result.ReplayFrames, ReplayFrame{
			Tick:             tick,
			Snapshot:         endSnapshot,
			ProjectileTraces: traceSnaps,
			BoostSegments:    boostSegments,
			ActionHints:      []ActionHint{actionHint(actionA), actionHint(actionB)},
			FrameRate:        replayFrameRate(),
		})

		timer.ObserveDone()
		metrics.SetInFlightProjectiles(len(projectiles))

		if a.Alive != b.Alive {
			status = "finished"
			survivor := a.ID
			if b.Alive {
				survivor = b.ID
			}
			s := survivor.String()
			winnerID = &s
			result.FinalSnapshot = endSnapshot
			result.FinalPerception = endPerceptionSnap
			break
		}
		if !a.Alive && !b.Alive {
			status = "draw"
			result.FinalSnapshot = endSnapshot
			result.FinalPerception = endPerceptionSnap
			break
		}
		if tick == cfg.MaxTicks {
			status = "draw"
			result.FinalSnapshot = endSnapshot
			result.FinalPerception = endPerceptionSnap
		}
	}

	result.Status = status
	result.WinnerID = winnerID
	metrics.RecordBattleCompleted(status)
	return result, nil
}

// stepRobotMotionDetailed runs one robot's motion phase (boost cooldown decay,
// energy regen, linear delta, boost step) and returns the combined delta plus
// the boost-only component of it, for replay boost-segment rendering.
func stepRobotMotionDetailed(self *RobotState, cs ControlState) (dx, dy float64, attempted bool, boostDX, boostDY float64, boostAttempted, boostIgnited bool) {
	if !self.Alive {
		self.neutralize()
		return 0, 0, false, 0, 0, false, false
	}

	decrementBoostCooldown(self)
	regenEnergy(self)

	ldx, ldy, lAttempted := linearDelta(self, cs.Throttle, cs.Strafe, cs.Fire)
	bdx, bdy, bAttempted, ignited := stepBoost(self, cs.BoostWanted, cs.BoostDir)

	return ldx + bdx, ldy + bdy, lAttempted || bAttempted, bdx, bdy, bAttempted, ignited
}

func fireCooldownTickDown(r *RobotState) {
	if r.Alive && r.FireCooldown > 0 {
		r.FireCooldown--
	}
}

// spawnFireIntent evaluates one robot's fire intent for this tick and, if
// authorized, debits energy, resets cooldown, and appends a new projectile.
func spawnFireIntent(shooter *RobotState, targetID RobotID, wantsFire bool, projectiles *[]*Projectile) (spawned bool, blockedReason string) {
	if !shooter.Alive || !wantsFire {
		return false, ""
	}
	if shooter.FireCooldown > 0 {
		return false, "cooldown"
	}
	if shooter.Energy < FireEnergyCost {
		return false, "energy"
	}
	shooter.Energy -= FireEnergyCost
	shooter.FireCooldown = FireCooldownTicks
	*projectiles = append(*projectiles, spawnProjectile(shooter.ID, targetID, shooter))
	return true, ""
}

func traceFor(traces []ProjectileTrace, shooter RobotID) *ProjectileTrace {
	for i := len(traces) - 1; i >= 0; i-- {
		if traces[i].ShooterID == shooter {
			return &traces[i]
		}
	}
	return nil
}

func buildActionRecord(id RobotID, cs ControlState, rotationDelta float64, move MoveResult, fireSpawned bool, fireBlocked string, trace *ProjectileTrace) ActionRecord {
	rec := ActionRecord{
		RobotID:           id.String(),
		Throttle:          round4(cs.Throttle),
		Strafe:            round4(cs.Strafe),
		Turn:              round4(cs.Turn),
		Fire:              cs.Fire,
		BoostRequested:    cs.BoostWanted,
		BoostIgnited:      move.BoostIgnited,
		RotationDeltaDeg:  rotationDelta,
		HitBoundary:       move.HitBoundary,
		BlockedByRobot:    move.BlockedByRobot,
		FireSpawned:       fireSpawned,
		FireBlockedReason: fireBlocked,
		MatchedLines:      cs.MatchedLines,
	}
	if cs.BoostWanted {
		rec.BoostDirection = cs.BoostDir.String()
	}
	if trace != nil {
		snap := snapshotTrace(*trace)
		rec.ProjectileTrace = &snap
	}
	rec.Details = describeAction(rec)
	return rec
}

func describeAction(rec ActionRecord) string {
	switch {
	case rec.ProjectileTrace != nil && rec.ProjectileTrace.Hit:
		return "shot landed"
	case rec.FireSpawned:
		return "fired"
	case rec.FireBlockedReason != "":
		return "fire blocked: " + rec.FireBlockedReason
	case rec.BlockedByRobot:
		return "blocked by robot"
	case rec.BoostIgnited:
		return "boost ignited"
	case rec.HitBoundary:
		return "hit boundary"
	default:
		return "moved"
	}
}

func actionHint(rec ActionRecord) ActionHint {
	action := "MOVE"
	switch {
	case rec.FireSpawned:
		action = "FIRE"
	case rec.BoostIgnited:
		action = "BOOST"
	}
	return ActionHint{
		RobotID: rec.RobotID,
		Action:  action,
		Event:   rec.Details,
		Boosted: rec.BoostIgnited,
	}
}

// replayFrameRate reports round(1000 / tick_ms), per spec §6.
func replayFrameRate() int {
	tickMs := 1000.0 / 60.0
	return int(math.Round(1000.0 / tickMs))
}
