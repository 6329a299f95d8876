package service

import "testing"

func TestComputeTier(t *testing.T) {
	cases := []struct {
		points   int
		tier     Tier
		next     Tier
		progress float64
	}{
		{0, TierBeginner, TierNovice, 0},
		{150, TierBeginner, TierNovice, 50},
		{299, TierBeginner, TierNovice, 99.7},
		{300, TierNovice, TierIntermediate, 0},
		{799, TierNovice, TierIntermediate, 99.8},
		{800, TierIntermediate, TierAdvanced, 0},
		{1500, TierAdvanced, TierExpert, 0},
		{2500, TierExpert, "", 100},
		{3000, TierExpert, "", 100},
		{-50, TierBeginner, TierNovice, 0},
	}
	for _, tc := range cases {
		got := ComputeTier(tc.points)
		if got.Tier != tc.tier || got.NextTier != tc.next || got.ProgressPercent != tc.progress {
			t.Errorf("ComputeTier(%d)=%+v, want tier=%s next=%q progress=%v", tc.points, got, tc.tier, tc.next, tc.progress)
		}
	}
}

func TestComputeTierMonotonic(t *testing.T) {
	rank := map[Tier]int{}
	for i, th := range TierThresholds {
		rank[th.Tier] = i
	}
	prev := 0
	for p := 0; p <= 3000; p += 7 {
		r := rank[ComputeTier(p).Tier]
		if r < prev {
			t.Fatalf("tier decreased at %d points", p)
		}
		prev = r
	}
}
