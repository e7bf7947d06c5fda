package publish

import (
	"encoding/json"

	"github.com/yungbote/studio-publisher/internal/types"
)

// masteryModel is the rule deciding how many correct responses pass an
// exercise.
type masteryModel struct {
	Type string `json:"type"`
	N    int    `json:"n"`
	M    int    `json:"m"`
}

// exerciseConfig is the opaque mastery override stored on an exercise node.
type exerciseConfig struct {
	MasteryModel string `json:"mastery_model,omitempty"`
	N            int    `json:"n,omitempty"`
	M            int    `json:"m,omitempty"`
	Randomize    *bool  `json:"randomize,omitempty"`
}

func parseExerciseConfig(raw []byte) exerciseConfig {
	var cfg exerciseConfig
	if len(raw) > 0 {
		// Malformed overrides fall back to defaults rather than blocking the
		// publish.
		_ = json.Unmarshal(raw, &cfg)
	}
	return cfg
}

// normalizeMastery resolves the configured mastery type against the item
// count. Legacy fixed patterns keep their type but get explicit n/m; the
// caller always also emits the normalized m_of_n form. Zero items never
// yields a zero threshold.
func normalizeMastery(cfg exerciseConfig, itemCount int) masteryModel {
	model := masteryModel{Type: cfg.MasteryModel}
	if model.Type == "" {
		model.Type = types.MasteryMOfN
	}

	switch model.Type {
	case types.MasteryMOfN:
		model.N = cfg.N
		model.M = cfg.M
		if model.N == 0 {
			model.N = clampAtLeastOne(min(5, itemCount))
		}
		if model.M == 0 {
			model.M = clampAtLeastOne(min(5, itemCount))
		}
	case types.MasteryDoAll:
		model.N = clampAtLeastOne(itemCount)
		model.M = clampAtLeastOne(itemCount)
	case types.MasteryNumCorrectInRow2:
		model.N, model.M = 2, 2
	case types.MasteryNumCorrectInRow3:
		model.N, model.M = 3, 3
	case types.MasteryNumCorrectInRow5:
		model.N, model.M = 5, 5
	case types.MasteryNumCorrectInRow10:
		model.N, model.M = 10, 10
	}
	return model
}

func clampAtLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
