package config

import "testing"

func TestValidateAppliesDefaultsForZeroFields(t *testing.T) {
	cfg, err := BattleConfig{}.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArenaSize != DefaultArenaSize || cfg.MaxTicks != DefaultMaxTicks {
		t.Errorf("got %+v, want defaults %d/%d", cfg, DefaultArenaSize, DefaultMaxTicks)
	}
}

func TestValidateRejectsArenaSizeOutOfBounds(t *testing.T) {
	if _, err := (BattleConfig{ArenaSize: MinArenaSize - 1, MaxTicks: DefaultMaxTicks}).Validate(); err == nil {
		t.Error("expected error for arena size below minimum")
	}
	if _, err := (BattleConfig{ArenaSize: MaxArenaSize + 1, MaxTicks: DefaultMaxTicks}).Validate(); err == nil {
		t.Error("expected error for arena size above maximum")
	}
}

func TestValidateRejectsMaxTicksOutOfBounds(t *testing.T) {
	if _, err := (BattleConfig{ArenaSize: DefaultArenaSize, MaxTicks: MinMaxTicks - 1}).Validate(); err == nil {
		t.Error("expected error for max ticks below minimum")
	}
	if _, err := (BattleConfig{ArenaSize: DefaultArenaSize, MaxTicks: MaxMaxTicks + 1}).Validate(); err == nil {
		t.Error("expected error for max ticks above maximum")
	}
}

func TestValidateAcceptsBoundaryValues(t *testing.T) {
	cfg, err := (BattleConfig{ArenaSize: MinArenaSize, MaxTicks: MinMaxTicks}).Validate()
	if err != nil {
		t.Fatalf("unexpected error at lower bounds: %v", err)
	}
	if cfg.ArenaSize != MinArenaSize || cfg.MaxTicks != MinMaxTicks {
		t.Errorf("got %+v, want unchanged boundary values", cfg)
	}

	cfg, err = (BattleConfig{ArenaSize: MaxArenaSize, MaxTicks: MaxMaxTicks}).Validate()
	if err != nil {
		t.Fatalf("unexpected error at upper bounds: %v", err)
	}
	if cfg.ArenaSize != MaxArenaSize || cfg.MaxTicks != MaxMaxTicks {
		t.Errorf("got %+v, want unchanged boundary values", cfg)
	}
}
