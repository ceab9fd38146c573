package payload

import (
	"fmt"
	"sort"
)

// Mode is one dashboard wrapper around the shared forecasting engine.
type Mode struct {
	Slug          string
	Title         string
	Dataset       string
	Model         string
	Horizon       int
	ContextLength int
	Description   string
}

// ModeCard is the lab index entry for a mode.
type ModeCard struct {
	Mode        string `json:"mode"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Dataset     string `json:"dataset"`
	Model       string `json:"model"`
}

var modes = map[string]Mode{
	"telemetry": {
		Slug:          "telemetry",
		Title:         "Operational Risk Mode",
		Dataset:       "telemetry",
		Model:         "lgbm_quantile",
		Horizon:       24,
		ContextLength: 120,
		Description:   "Failure probability, resource exhaustion risk, and regime-shift aware telemetry forecasting.",
	},
	"demand": {
		Slug:          "demand",
		Title:         "Forecasting Lab Mode",
		Dataset:       "nyc_taxi",
		Model:         "lstm_gaussian",
		Horizon:       24,
		ContextLength: 168,
		Description:   "Demand uncertainty bands, peak event probability, and seasonal regime analysis.",
	},
	"project-risk": {
		Slug:          "project-risk",
		Title:         "Project Risk Mode",
		Dataset:       "project_sim",
		Model:         "lgbm_quantile",
		Horizon:       12,
		ContextLength: 72,
		Description:   "Delay probability, cost overrun pressure, and critical-path volatility simulation.",
	},
	"event-sandbox": {
		Slug:          "event-sandbox",
		Title:         "Event Forecasting Sandbox",
		Dataset:       "energy_load",
		Model:         "lstm_gaussian",
		Horizon:       18,
		ContextLength: 120,
		Description:   "Probability drift, confidence shift, and uncertainty widening in event-like trajectories.",
	},
	"finance": {
		Slug:          "finance",
		Title:         "Financial Regime Mode",
		Dataset:       "energy_load",
		Model:         "lgbm_quantile",
		Horizon:       30,
		ContextLength: 180,
		Description:   "Volatility band expansion and regime-change likelihood without alpha claims.",
	},
}

// LookupMode returns the catalog entry for slug.
func LookupMode(slug string) (Mode, error) {
	m, ok := modes[slug]
	if !ok {
		return Mode{}, fmt.Errorf("%w %q (supported: %v)", ErrUnknownMode, slug, ModeSlugs())
	}
	return m, nil
}

// ModeSlugs returns every catalog slug in sorted order.
func ModeSlugs() []string {
	slugs := make([]string, 0, len(modes))
	for slug := range modes {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// ModeCards returns the lab index cards in slug order.
func ModeCards() []ModeCard {
	slugs := ModeSlugs()
	cards := make([]ModeCard, 0, len(slugs))
	for _, slug := range slugs {
		m := modes[slug]
		cards = append(cards, ModeCard{
			Mode:        m.Slug,
			Title:       m.Title,
			Description: m.Description,
			Dataset:     m.Dataset,
			Model:       m.Model,
		})
	}
	return cards
}
