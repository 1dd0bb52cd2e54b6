package rebalance

import (
	"errors"
	"testing"
)

func TestTargetTable_Resolve(t *testing.T) {
	table := testTargets(t)

	testCases := []struct {
		name    string
		band    int
		wantErr bool
	}{
		{name: "known band with valid weights", band: 8},
		{name: "weights not summing to one", band: 9, wantErr: true},
		{name: "unknown band", band: 99, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mix, err := table.Resolve(tc.band)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%d) succeeded, want configuration error", tc.band)
				}
				var confErr *ConfigurationError
				if !errors.As(err, &confErr) {
					t.Fatalf("Resolve(%d) returned %T, want *ConfigurationError", tc.band, err)
				}
				if confErr.Band != tc.band {
					t.Errorf("error band = %d, want %d", confErr.Band, tc.band)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%d) returned unexpected error: %v", tc.band, err)
			}
			if got := len(mix.Sleeves()); got != 2 {
				t.Errorf("len(Sleeves()) = %d, want 2", got)
			}
		})
	}
}

func TestTargetTable_Resolve_EpsilonTolerance(t *testing.T) {
	// A sum off by less than 1e-6 is a rounding artifact, not a fault.
	table := NewTargetTable(map[int][]SleeveTarget{
		8: {
			{Sleeve: "US Equity", Weight: W(0.6000001)},
			{Sleeve: "Bonds", Weight: W(0.3999998)},
		},
	})
	if _, err := table.Resolve(8); err != nil {
		t.Errorf("Resolve(8) with 1e-7 drift returned error: %v", err)
	}
}

func TestTargetTable_Bands(t *testing.T) {
	table := testTargets(t)
	bands := table.Bands()
	if len(bands) != 2 || bands[0] != 8 || bands[1] != 9 {
		t.Errorf("Bands() = %v, want [8 9]", bands)
	}
}

func TestTargetMix_Get(t *testing.T) {
	table := testTargets(t)
	mix, err := table.Resolve(8)
	if err != nil {
		t.Fatalf("Resolve(8) failed: %v", err)
	}
	st, ok := mix.Get("Bonds")
	if !ok {
		t.Fatal("Get(Bonds) not found")
	}
	if st.Proxy != "BND" || !st.ProxyPrice.Equal(M(100)) {
		t.Errorf("Get(Bonds) = %+v, want proxy BND at $100", st)
	}
	if _, ok := mix.Get("Gold"); ok {
		t.Error("Get(Gold) found, want absent")
	}
}
