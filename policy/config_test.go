package policy

import "testing"

func TestNormalize_ClampsInitialProvidersFloor(t *testing.T) {
	cfg := HedgeConfig{InitialProviders: 0, MaxProviders: 3}
	got, info := cfg.Normalize()
	if got.InitialProviders != 1 {
		t.Fatalf("expected InitialProviders clamped to 1, got %d", got.InitialProviders)
	}
	if !info.Changed {
		t.Fatal("expected Changed=true")
	}
}

func TestNormalize_ClampsInitialAboveMax(t *testing.T) {
	cfg := HedgeConfig{InitialProviders: 5, MaxProviders: 2}
	got, info := cfg.Normalize()
	if got.InitialProviders != 2 {
		t.Fatalf("expected InitialProviders clamped to MaxProviders=2, got %d", got.InitialProviders)
	}
	if !info.Changed {
		t.Fatal("expected Changed=true")
	}
}

func TestNormalize_ClampsMaxProvidersFloor(t *testing.T) {
	cfg := HedgeConfig{InitialProviders: 1, MaxProviders: 0}
	got, info := cfg.Normalize()
	if got.MaxProviders != 1 {
		t.Fatalf("expected MaxProviders clamped to 1, got %d", got.MaxProviders)
	}
	if !info.Changed {
		t.Fatal("expected Changed=true")
	}
}

func TestNormalize_NegativeDurationsClampToZero(t *testing.T) {
	cfg := HedgeConfig{InitialProviders: 1, MaxProviders: 1, HedgeAfter: -1, OverallTimeout: -1}
	got, info := cfg.Normalize()
	if got.HedgeAfter != 0 || got.OverallTimeout != 0 {
		t.Fatalf("expected negative durations clamped to 0, got %+v", got)
	}
	if !info.Changed {
		t.Fatal("expected Changed=true")
	}
}

func TestNormalize_AlreadyValidIsUnchanged(t *testing.T) {
	cfg := HedgeConfig{InitialProviders: 2, MaxProviders: 3}
	got, info := cfg.Normalize()
	if got != cfg {
		t.Fatalf("expected cfg unchanged, got %+v", got)
	}
	if info.Changed {
		t.Fatalf("expected Changed=false, got ChangedFields=%v", info.ChangedFields)
	}
}

func TestPresets_InitialNeverExceedsMax(t *testing.T) {
	presets := []HedgeConfig{LowLatency(), Conservative(), Aggressive()}
	for _, p := range presets {
		if p.InitialProviders < 1 {
			t.Fatalf("preset has InitialProviders < 1: %+v", p)
		}
		if p.InitialProviders > p.MaxProviders {
			t.Fatalf("preset has InitialProviders > MaxProviders: %+v", p)
		}
	}
}

func TestPresets_DistinctTimingProfiles(t *testing.T) {
	low := LowLatency()
	conservative := Conservative()
	aggressive := Aggressive()

	if low.InitialProviders != 2 {
		t.Errorf("LowLatency: expected InitialProviders=2, got %d", low.InitialProviders)
	}
	if conservative.InitialProviders != 1 {
		t.Errorf("Conservative: expected InitialProviders=1, got %d", conservative.InitialProviders)
	}
	if aggressive.InitialProviders != 3 {
		t.Errorf("Aggressive: expected InitialProviders=3, got %d", aggressive.InitialProviders)
	}
	if conservative.HedgeAfter <= low.HedgeAfter {
		t.Errorf("expected Conservative.HedgeAfter > LowLatency.HedgeAfter")
	}
}
