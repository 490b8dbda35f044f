package script

import "testing"

func TestParseSimpleCommands(t *testing.T) {
	prog, diag := Parse("SET THROTTLE 0.5\nFIRE\nBOOST LEFT\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(prog.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(prog.Rules))
	}

	set, ok := prog.Rules[0].Command.(SetControl)
	if !ok || set.Field != FieldThrottle || set.Value != 0.5 {
		t.Errorf("rule 0 = %#v, want SetControl{THROTTLE, 0.5}", prog.Rules[0].Command)
	}
	fire, ok := prog.Rules[1].Command.(Fire)
	if !ok || !fire.Enabled {
		t.Errorf("rule 1 = %#v, want Fire{true}", prog.Rules[1].Command)
	}
	boost, ok := prog.Rules[2].Command.(Boost)
	if !ok || boost.Direction != BoostLeft {
		t.Errorf("rule 2 = %#v, want Boost{LEFT}", prog.Rules[2].Command)
	}
}

func TestParseAliases(t *testing.T) {
	prog, diag := Parse("SHOOT\nIF ENEMY_VISIBLE THEN FIRE OFF\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if _, ok := prog.Rules[0].Command.(Fire); !ok {
		t.Errorf("SHOOT should parse as Fire")
	}
	fire := prog.Rules[1].Command.(Fire)
	if fire.Enabled {
		t.Errorf("FIRE OFF should be disabled")
	}
	if _, ok := prog.Rules[1].Condition.(Visibility); !ok {
		t.Errorf("expected Visibility condition, got %#v", prog.Rules[1].Condition)
	}
}

func TestParseComparisonAndLogical(t *testing.T) {
	prog, diag := Parse("IF SELF_ENERGY > 50 AND NOT ENEMY_VISIBLE THEN SET TURN 1\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	logical, ok := prog.Rules[0].Condition.(Logical)
	if !ok || logical.Op != LogicalAnd {
		t.Fatalf("expected top-level AND, got %#v", prog.Rules[0].Condition)
	}
	cmp, ok := logical.Left.(Compare)
	if !ok || cmp.Op != OpGT {
		t.Errorf("expected Compare{>}, got %#v", logical.Left)
	}
	not, ok := logical.Right.(Not)
	if !ok {
		t.Errorf("expected Not, got %#v", logical.Right)
	}
	if _, ok := not.Operand.(Visibility); !ok {
		t.Errorf("expected Visibility under Not, got %#v", not.Operand)
	}
}

func TestParseParenAmbiguity(t *testing.T) {
	// A parenthesized boolean group used directly as a condition.
	prog, diag := Parse("IF (ENEMY_VISIBLE OR SELF_ENERGY > 10) THEN FIRE\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if _, ok := prog.Rules[0].Condition.(Logical); !ok {
		t.Errorf("expected Logical condition, got %#v", prog.Rules[0].Condition)
	}

	// A parenthesized numeric sub-expression used as the left side of a
	// comparison, not a boolean group.
	prog2, diag2 := Parse("IF (SELF_ENERGY + 1) > 2 THEN FIRE\n")
	if diag2 != nil {
		t.Fatalf("unexpected diagnostic: %v", diag2)
	}
	cmp, ok := prog2.Rules[0].Condition.(Compare)
	if !ok {
		t.Fatalf("expected Compare, got %#v", prog2.Rules[0].Condition)
	}
	if _, ok := cmp.Left.(BinaryExpr); !ok {
		t.Errorf("expected BinaryExpr on the left, got %#v", cmp.Left)
	}
}

func TestParseFunctionsAndConstants(t *testing.T) {
	prog, diag := Parse("IF ABS(SELF_HEADING - 180) < CLAMP(5, 0, 10) THEN SET TURN 0.5\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	_ = prog

	_, diag2 := Parse("IF ATAN2(1, PI) > TAU / 8 THEN SET TURN 1\n")
	if diag2 != nil {
		t.Fatalf("unexpected diagnostic: %v", diag2)
	}
}

func TestParseArityMismatch(t *testing.T) {
	_, diag := Parse("IF ABS(1, 2) > 0 THEN FIRE\n")
	if diag == nil {
		t.Fatal("expected arity diagnostic")
	}
}

func TestParseUnknownIdentifier(t *testing.T) {
	_, diag := Parse("IF BOGUS_SENSOR > 0 THEN FIRE\n")
	if diag == nil {
		t.Fatal("expected unknown identifier diagnostic")
	}
}

func TestParseSetOutOfRange(t *testing.T) {
	_, diag := Parse("SET THROTTLE 1.5\n")
	if diag == nil {
		t.Fatal("expected out-of-range diagnostic")
	}
}

func TestParseEmptyScript(t *testing.T) {
	_, diag := Parse("# just a comment\n\n")
	if diag == nil {
		t.Fatal("expected empty-script diagnostic")
	}
}

func TestParseTooManyLines(t *testing.T) {
	text := ""
	for i := 0; i < 201; i++ {
		text += "FIRE\n"
	}
	_, diag := Parse(text)
	if diag == nil {
		t.Fatal("expected too-many-lines diagnostic")
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	prog, diag := Parse("# leading comment\n\nSET THROTTLE 1 # trailing comment\n\nFIRE\n")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(prog.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(prog.Rules))
	}
}

// reserialize turns a parsed Program back into DSL source, for the
// round-trip property test (spec §8 property 7).
func reserialize(prog *Program) string {
	var out string
	for _, rule := range prog.Rules {
		out += reserializeRule(rule) + "\n"
	}
	return out
}

func reserializeRule(rule Rule) string {
	s := ""
	if rule.Condition != nil {
		s += "IF " + reserializeCond(rule.Condition) + " THEN "
	}
	return s + reserializeCommand(rule.Command)
}

func reserializeCommand(cmd Command) string {
	switch c := cmd.(type) {
	case SetControl:
		return "SET " + c.Field.String() + " " + floatStr(c.Value)
	case Fire:
		if c.Enabled {
			return "FIRE ON"
		}
		return "FIRE OFF"
	case Boost:
		return "BOOST " + c.Direction.String()
	}
	return ""
}

func reserializeCond(cond Condition) string {
	switch c := cond.(type) {
	case Visibility:
		if c.Visible {
			return "ENEMY_VISIBLE"
		}
		return "NOT ENEMY_VISIBLE"
	case Compare:
		return reserializeNum(c.Left) + " " + cmpStr(c.Op) + " " + reserializeNum(c.Right)
	case Logical:
		op := "AND"
		if c.Op == LogicalOr {
			op = "OR"
		}
		return "(" + reserializeCond(c.Left) + ") " + op + " (" + reserializeCond(c.Right) + ")"
	case Not:
		return "NOT (" + reserializeCond(c.Operand) + ")"
	}
	return ""
}

func reserializeNum(e NumExpr) string {
	switch v := e.(type) {
	case Number:
		return floatStr(v.Value)
	case SensorRef:
		return v.Name
	case UnaryExpr:
		return string(byte(v.Op)) + reserializeNum(v.Operand)
	case BinaryExpr:
		return "(" + reserializeNum(v.Left) + " " + string(byte(v.Op)) + " " + reserializeNum(v.Right) + ")"
	case FuncCall:
		s := v.Name + "("
		for i, a := range v.Args {
			if i > 0 {
				s += ", "
			}
			s += reserializeNum(a)
		}
		return s + ")"
	}
	return ""
}

func cmpStr(op CompareOp) string {
	switch op {
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	}
	return "?"
}

func floatStr(f float64) string {
	// Deliberately simple: the round-trip test below only exercises values
	// that format exactly, not the full float formatting space.
	if f == float64(int64(f)) {
		return intToStr(int64(f))
	}
	buf := make([]byte, 0, 16)
	neg := f < 0
	if neg {
		f = -f
		buf = append(buf, '-')
	}
	whole := int64(f)
	frac := int64((f-float64(whole))*10000 + 0.5)
	buf = append(buf, intToStr(whole)...)
	buf = append(buf, '.')
	fracStr := intToStr(frac)
	for len(fracStr) < 4 {
		fracStr = "0" + fracStr
	}
	buf = append(buf, fracStr...)
	return string(buf)
}

func intToStr(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func TestParseRoundTrip(t *testing.T) {
	sources := []string{
		"SET THROTTLE 1\n",
		"IF ENEMY_VISIBLE THEN FIRE ON\n",
		"IF SELF_ENERGY > 50 THEN SET TURN 1\n",
		"IF NOT ENEMY_VISIBLE THEN BOOST RIGHT\n",
	}
	for _, src := range sources {
		prog, diag := Parse(src)
		if diag != nil {
			t.Fatalf("parse(%q): %v", src, diag)
		}
		again, diag2 := Parse(reserialize(prog))
		if diag2 != nil {
			t.Fatalf("reparse of %q failed: %v", src, diag2)
		}
		if len(again.Rules) != len(prog.Rules) {
			t.Fatalf("round trip rule count mismatch for %q", src)
		}
	}
}
