package arena

import (
	"math"

	"github.com/fight-club/battlearena/internal/script"
)

// ControlState is the control vector produced by one rule-evaluation pass:
// last-match-wins per field, starting from a neutral value.
type ControlState struct {
	Throttle    float64
	Strafe      float64
	Turn        float64
	Fire        bool
	BoostDir    script.BoostDirection
	BoostWanted bool

	MatchedLines []int
}

// neutralControlState is the starting value for every rule-evaluation pass.
func neutralControlState() ControlState {
	return ControlState{}
}

// EvaluateRules walks prog's rules top-to-bottom against sensors, applying
// each matched rule's command. Last match wins per control field; an absent
// condition always matches.
func EvaluateRules(prog *script.Program, sensors SensorTable) ControlState {
	cs := neutralControlState()
	if prog == nil {
		return cs
	}

	for _, rule := range prog.Rules {
		if rule.Condition != nil {
			if !evalCondition(rule.Condition, sensors) {
				continue
			}
		}
		applyCommand(rule.Command, &cs)
		cs.MatchedLines = append(cs.MatchedLines, rule.Line)
	}

	return cs
}

func applyCommand(cmd script.Command, cs *ControlState) {
	switch c := cmd.(type) {
	case script.SetControl:
		switch c.Field {
		case script.FieldThrottle:
			cs.Throttle = c.Value
		case script.FieldStrafe:
			cs.Strafe = c.Value
		case script.FieldTurn:
			cs.Turn = c.Value
		}
	case script.Fire:
		cs.Fire = c.Enabled
	case script.Boost:
		cs.BoostDir = c.Direction
		cs.BoostWanted = true
	}
}

// evalCondition evaluates a Condition tree against sensors. An unavailable
// operand in a Compare makes that Compare evaluate false, per spec §4.2/§7.
func evalCondition(cond script.Condition, sensors SensorTable) bool {
	switch c := cond.(type) {
	case script.Visibility:
		result := sensors.EnemyVisible()
		if !c.Visible {
			return !result
		}
		return result
	case script.Compare:
		l, lok := evalNumExpr(c.Left, sensors)
		r, rok := evalNumExpr(c.Right, sensors)
		if !lok || !rok {
			return false
		}
		switch c.Op {
		case script.OpGT:
			return l > r
		case script.OpGE:
			return l >= r
		case script.OpLT:
			return l < r
		case script.OpLE:
			return l <= r
		case script.OpEQ:
			return l == r
		case script.OpNE:
			return l != r
		}
		return false
	case script.Logical:
		left := evalCondition(c.Left, sensors)
		if c.Op == script.LogicalAnd {
			return left && evalCondition(c.Right, sensors)
		}
		return left || evalCondition(c.Right, sensors)
	case script.Not:
		return !evalCondition(c.Operand, sensors)
	default:
		return false
	}
}

// evalNumExpr evaluates a NumExpr tree against sensors. Any unavailable
// sensor, division by zero, or NaN/Inf result propagates as unavailable
// rather than a runtime error, per spec §7.
func evalNumExpr(expr script.NumExpr, sensors SensorTable) (float64, bool) {
	switch e := expr.(type) {
	case script.Number:
		return e.Value, true

	case script.SensorRef:
		return sensors.Get(e.Name)

	case script.UnaryExpr:
		v, ok := evalNumExpr(e.Operand, sensors)
		if !ok {
			return 0, false
		}
		if e.Op == script.UnaryMinus {
			return -v, true
		}
		return v, true

	case script.BinaryExpr:
		l, lok := evalNumExpr(e.Left, sensors)
		r, rok := evalNumExpr(e.Right, sensors)
		if !lok || !rok {
			return 0, false
		}
		var result float64
		switch e.Op {
		case script.BinaryAdd:
			result = l + r
		case script.BinarySub:
			result = l - r
		case script.BinaryMul:
			result = l * r
		case script.BinaryDiv:
			if r == 0 {
				return 0, false
			}
			result = l / r
		}
		return checkFinite(result)

	case script.FuncCall:
		return evalFuncCall(e, sensors)

	default:
		return 0, false
	}
}

func evalFuncCall(call script.FuncCall, sensors SensorTable) (float64, bool) {
	args := make([]float64, len(call.Args))
	for i, a := range call.Args {
		v, ok := evalNumExpr(a, sensors)
		if !ok {
			return 0, false
		}
		args[i] = v
	}

	var result float64
	switch call.Name {
	case "ABS":
		result = math.Abs(args[0])
	case "MIN":
		result = math.Min(args[0], args[1])
	case "MAX":
		result = math.Max(args[0], args[1])
	case "CLAMP":
		result = math.Max(args[1], math.Min(args[2], args[0]))
	case "ATAN2":
		result = math.Atan2(args[0], args[1])
	case "ANGLE_DIFF":
		result = normalizeAngleSigned(args[0] - args[1])
	case "NORMALIZE_ANGLE":
		result = normalizeAngleSigned(args[0])
	default:
		return 0, false
	}
	return checkFinite(result)
}

func checkFinite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// normalizeAngleSigned wraps an angle in radians to [-pi, pi].
func normalizeAngleSigned(angle float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if angle < 0 {
		angle += twoPi
	}
	if angle > math.Pi {
		angle -= twoPi
	}
	return angle
}
