package domain

import "time"

// Configuration is the document loaded from disk: one profile plus the range to project.
type Configuration struct {
	Profile    FinancialProfile   `yaml:"profile" json:"profile"`
	Projection ProjectionSettings `yaml:"projection" json:"projection"`
}

// ProjectionSettings is the configuration surface of one run.
type ProjectionSettings struct {
	// Start is aligned to its granularity period; zero means the current month.
	Start          time.Time   `yaml:"start,omitempty" json:"start,omitempty"`
	ForwardPeriods int         `yaml:"forward_periods" json:"forward_periods"`
	HistoryPeriods int         `yaml:"history_periods,omitempty" json:"history_periods,omitempty"`
	Granularity    Granularity `yaml:"granularity,omitempty" json:"granularity,omitempty"`
}

// EffectiveGranularity resolves the settings granularity, then the profile's, then monthly.
func (s ProjectionSettings) EffectiveGranularity(profileGranularity Granularity) Granularity {
	if s.Granularity != "" {
		return s.Granularity
	}
	return profileGranularity.OrDefault()
}
