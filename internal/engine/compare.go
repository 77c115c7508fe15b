package engine

import (
	"fmt"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string             `json:"name"`
	Settings model.SortSettings `json:"settings"`
}

// ComparisonResult holds the outcome of one scenario. Err is set when the
// scenario could not place every game; Result is then empty.
type ComparisonResult struct {
	Scenario    ComparisonScenario `json:"scenario"`
	Result      model.SortResult   `json:"result"`
	ShelvesUsed int                `json:"shelves_used"`
	FillPercent float64            `json:"fill_percent"`
	Err         error              `json:"-"`
}

// OK reports whether every game was placed.
func (c ComparisonResult) OK() bool {
	return c.Err == nil
}

// CompareScenarios sorts the same games once per scenario, in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, games []model.Game, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings, opts...).Run(games)
		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Result:      result,
			ShelvesUsed: result.ShelvesUsed(),
			FillPercent: result.FillPercent(),
			Err:         err,
		})
	}

	return results
}

// BuildDefaultScenarios returns the base settings followed by every other
// placement and rotation combination on the same shelves.
func BuildDefaultScenarios(baseSettings model.SortSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	placements := []model.Placement{model.PlacementVertical, model.PlacementHorizontal, model.PlacementFree}
	rotations := []model.Rotation{model.RotationNone, model.RotationRotated, model.RotationFree}

	for _, p := range placements {
		for _, r := range rotations {
			if p == baseSettings.Placement && r == baseSettings.Rotation {
				continue
			}
			alt := baseSettings
			alt.Placement = p
			alt.Rotation = r
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("%s / %s", p, r),
				Settings: alt,
			})
		}
	}

	return scenarios
}
