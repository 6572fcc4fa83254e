package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the profile and the projection range
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Profile.Validate(); err != nil {
		return err
	}
	return config.Projection.Validate(config.Profile.Granularity)
}

// LoadUpdateFromFile loads a partial profile to merge into a configuration.
// The merged profile is validated by the caller.
func (ip *InputParser) LoadUpdateFromFile(filename string) (*domain.ProfileUpdate, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var update domain.ProfileUpdate
	if err := yaml.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &update, nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	return &domain.Configuration{
		Profile: domain.FinancialProfile{
			RecurringIncome: map[string]decimal.Decimal{
				"salary":    decimal.NewFromInt(6200),
				"freelance": decimal.NewFromInt(450),
			},
			RecurringExpenses: map[string]decimal.Decimal{
				"rent":      decimal.NewFromInt(1950),
				"groceries": decimal.NewFromInt(620),
				"utilities": decimal.NewFromInt(240),
				"transport": decimal.NewFromInt(310),
				"insurance": decimal.NewFromInt(185),
			},
			RecurringSavingsContributions: map[string]decimal.Decimal{
				"emergency fund": decimal.NewFromInt(400),
			},
			RecurringInvestmentContributions: map[string]decimal.Decimal{
				"index fund": decimal.NewFromInt(500),
			},
			DebtAccounts: []domain.DebtAccount{
				{
					ID:                   "visa",
					Name:                 "Visa card",
					PrincipalBalance:     decimal.NewFromInt(4200),
					AnnualPercentageRate: decimal.NewFromFloat(21.9),
					MonthlyPayment:       decimal.NewFromInt(180),
				},
				{
					ID:                   "auto",
					Name:                 "Car loan",
					PrincipalBalance:     decimal.NewFromInt(14500),
					AnnualPercentageRate: decimal.NewFromFloat(6.4),
					MonthlyPayment:       decimal.NewFromInt(390),
				},
			},
			LumpSums: []domain.LumpSumEvent{
				{
					Amount:        decimal.NewFromInt(3000),
					EffectiveDate: start.AddDate(0, 2, 14),
					Direction:     domain.Inflow,
					Description:   "Annual bonus",
					Category:      "income",
				},
				{
					Amount:        decimal.NewFromInt(1800),
					EffectiveDate: start.AddDate(0, 7, 0),
					Direction:     domain.Outflow,
					Description:   "Summer vacation",
					Category:      "travel",
				},
			},
			Goals: []domain.Goal{
				{
					Name:         "Emergency fund",
					TargetAmount: decimal.NewFromInt(12000),
					TargetDate:   start.AddDate(1, 0, 0),
					Category:     "safety",
					Priority:     domain.PriorityHigh,
				},
				{
					Name:         "House down payment",
					TargetAmount: decimal.NewFromInt(40000),
					TargetDate:   start.AddDate(3, 0, 0),
					Category:     "housing",
					Priority:     domain.PriorityMedium,
				},
			},
			RiskTolerance:       domain.RiskMedium,
			Granularity:         domain.GranularityMonthly,
			StartingCash:        decimal.NewFromInt(2500),
			StartingInvestments: decimal.NewFromInt(8000),
		},
		Projection: domain.ProjectionSettings{
			Start:          start,
			ForwardPeriods: 24,
		},
	}
}
