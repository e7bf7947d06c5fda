package publish

import (
	"testing"

	"github.com/yungbote/studio-publisher/internal/types"
)

func TestNormalizeMasteryDefaults(t *testing.T) {
	cases := []struct {
		name      string
		cfg       exerciseConfig
		itemCount int
		wantType  string
		wantN     int
		wantM     int
	}{
		{"empty config small count", exerciseConfig{}, 3, types.MasteryMOfN, 3, 3},
		{"empty config large count", exerciseConfig{}, 12, types.MasteryMOfN, 5, 5},
		{"empty config zero items", exerciseConfig{}, 0, types.MasteryMOfN, 1, 1},
		{"explicit m of n", exerciseConfig{MasteryModel: types.MasteryMOfN, N: 8, M: 6}, 12, types.MasteryMOfN, 8, 6},
		{"partial m of n", exerciseConfig{MasteryModel: types.MasteryMOfN, M: 2}, 12, types.MasteryMOfN, 5, 2},
		{"do all", exerciseConfig{MasteryModel: types.MasteryDoAll}, 7, types.MasteryDoAll, 7, 7},
		{"do all zero items", exerciseConfig{MasteryModel: types.MasteryDoAll}, 0, types.MasteryDoAll, 1, 1},
		{"row of 2", exerciseConfig{MasteryModel: types.MasteryNumCorrectInRow2}, 9, types.MasteryNumCorrectInRow2, 2, 2},
		{"row of 3", exerciseConfig{MasteryModel: types.MasteryNumCorrectInRow3}, 9, types.MasteryNumCorrectInRow3, 3, 3},
		{"row of 5", exerciseConfig{MasteryModel: types.MasteryNumCorrectInRow5}, 9, types.MasteryNumCorrectInRow5, 5, 5},
		{"row of 10", exerciseConfig{MasteryModel: types.MasteryNumCorrectInRow10}, 9, types.MasteryNumCorrectInRow10, 10, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeMastery(tc.cfg, tc.itemCount)
			if got.Type != tc.wantType || got.N != tc.wantN || got.M != tc.wantM {
				t.Fatalf("normalizeMastery(%+v, %d) = %+v, want type=%s n=%d m=%d",
					tc.cfg, tc.itemCount, got, tc.wantType, tc.wantN, tc.wantM)
			}
		})
	}
}

func TestParseExerciseConfigTolerant(t *testing.T) {
	cfg := parseExerciseConfig([]byte(`{"mastery_model":"do_all","randomize":false}`))
	if cfg.MasteryModel != types.MasteryDoAll {
		t.Fatalf("mastery model = %q", cfg.MasteryModel)
	}
	if cfg.Randomize == nil || *cfg.Randomize {
		t.Fatalf("randomize should be explicitly false")
	}

	// Garbage and empty payloads both fall back to the zero config.
	if got := parseExerciseConfig([]byte(`not json`)); got != (exerciseConfig{}) {
		t.Fatalf("garbage payload produced %+v", got)
	}
	if got := parseExerciseConfig(nil); got != (exerciseConfig{}) {
		t.Fatalf("nil payload produced %+v", got)
	}
}
