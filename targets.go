package rebalance

import (
	"fmt"
	"slices"
	"strings"
)

// SleeveTarget is one sleeve's allocation within a target mix. Proxy names
// the identifier to buy when an account has no position in the sleeve, and
// ProxyPrice is its representative price.
type SleeveTarget struct {
	Sleeve     string
	Weight     Weight
	Proxy      string
	ProxyPrice Money
}

// TargetMix is the weight vector for one volatility band, covering every
// sleeve used in the run. It is immutable once resolved.
type TargetMix struct {
	Band    int // volatility band tag, e.g. 8 for 8%
	targets []SleeveTarget
	index   map[string]SleeveTarget
}

// Sleeves returns the sleeve targets sorted by sleeve name.
func (m *TargetMix) Sleeves() []SleeveTarget { return m.targets }

// Get looks up the target for a sleeve.
func (m *TargetMix) Get(sleeve string) (SleeveTarget, bool) {
	t, ok := m.index[sleeve]
	return t, ok
}

// TargetTable holds the sleeve weight vectors for every known volatility
// band, as loaded from the target configuration.
type TargetTable struct {
	mixes map[int]*TargetMix
}

// NewTargetTable builds a table from per-band sleeve targets.
func NewTargetTable(bands map[int][]SleeveTarget) *TargetTable {
	t := &TargetTable{mixes: make(map[int]*TargetMix, len(bands))}
	for band, targets := range bands {
		mix := &TargetMix{
			Band:    band,
			targets: slices.Clone(targets),
			index:   make(map[string]SleeveTarget, len(targets)),
		}
		slices.SortFunc(mix.targets, func(a, b SleeveTarget) int {
			return strings.Compare(a.Sleeve, b.Sleeve)
		})
		for _, st := range mix.targets {
			mix.index[st.Sleeve] = st
		}
		t.mixes[band] = mix
	}
	return t
}

// Bands returns the known volatility band tags in ascending order.
func (t *TargetTable) Bands() []int {
	bands := make([]int, 0, len(t.mixes))
	for band := range t.mixes {
		bands = append(bands, band)
	}
	slices.Sort(bands)
	return bands
}

// Resolve returns the target mix for a volatility band. An unknown band, or
// a band whose weights do not sum to 1 within 1e-6, is a configuration fault.
func (t *TargetTable) Resolve(band int) (*TargetMix, error) {
	mix, ok := t.mixes[band]
	if !ok {
		return nil, &ConfigurationError{Band: band, Reason: "unknown volatility band"}
	}
	var sum Weight
	for _, st := range mix.targets {
		if st.Weight.IsNegative() {
			return nil, &ConfigurationError{
				Band:   band,
				Reason: fmt.Sprintf("negative weight for sleeve %q", st.Sleeve),
			}
		}
		sum = sum.Add(st.Weight)
	}
	if !sum.IsWhole() {
		return nil, &ConfigurationError{
			Band:   band,
			Reason: fmt.Sprintf("weights sum to %s, not 100%%", sum),
		}
	}
	return mix, nil
}
