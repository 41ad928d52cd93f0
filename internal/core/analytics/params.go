// Package analytics turns fleet record snapshots into windowed metrics,
// fraud flags, cost trends and action priorities. Every function here is a
// pure computation over a read-only v1.Snapshot.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default domain constants. Callers override them through Params.
const (
	DefaultLookback          = 7 * 24 * time.Hour
	DefaultFraudSampleSize   = 4
	DefaultRenewalLeadMonths = 1
	DefaultInternalOwnership = "JT"
	DefaultCostTrendWindow   = 7 * 24 * time.Hour
)

var (
	DefaultEfficiencyLowerBound = decimal.Zero
	DefaultEfficiencyUpperBound = decimal.NewFromInt(40)
	DefaultFraudBaseline        = decimal.NewFromInt(8)
	DefaultFraudThreshold       = decimal.NewFromInt(400)

	DefaultMaintenanceMileageLimit = decimal.NewFromInt(5000)
)

// Params holds the tunable constants of every calculator.
type Params struct {
	// Lookback is the per-vehicle efficiency window length.
	Lookback time.Duration

	// Fleet efficiency rows must satisfy Lower < efficiency < Upper.
	EfficiencyLowerBound decimal.Decimal
	EfficiencyUpperBound decimal.Decimal

	// FraudBaseline is the assumed distance per fuel unit; FraudThreshold is
	// the implied distance per day above which a vehicle is flagged.
	FraudBaseline   decimal.Decimal
	FraudThreshold  decimal.Decimal
	FraudSampleSize int

	CostTrendWindow time.Duration

	RenewalLeadMonths int

	// InternalOwnership is the ownership label for vehicles held in-house.
	InternalOwnership string

	MaintenanceMileageLimit decimal.Decimal
}

// DefaultParams returns the stock fleet constants.
func DefaultParams() Params {
	return Params{
		Lookback:                DefaultLookback,
		EfficiencyLowerBound:    DefaultEfficiencyLowerBound,
		EfficiencyUpperBound:    DefaultEfficiencyUpperBound,
		FraudBaseline:           DefaultFraudBaseline,
		FraudThreshold:          DefaultFraudThreshold,
		FraudSampleSize:         DefaultFraudSampleSize,
		CostTrendWindow:         DefaultCostTrendWindow,
		RenewalLeadMonths:       DefaultRenewalLeadMonths,
		InternalOwnership:       DefaultInternalOwnership,
		MaintenanceMileageLimit: DefaultMaintenanceMileageLimit,
	}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.Lookback <= 0 {
		p.Lookback = d.Lookback
	}
	if p.EfficiencyUpperBound.IsZero() {
		p.EfficiencyUpperBound = d.EfficiencyUpperBound
	}
	if p.FraudBaseline.IsZero() {
		p.FraudBaseline = d.FraudBaseline
	}
	if p.FraudThreshold.IsZero() {
		p.FraudThreshold = d.FraudThreshold
	}
	if p.FraudSampleSize <= 0 {
		p.FraudSampleSize = d.FraudSampleSize
	}
	if p.CostTrendWindow <= 0 {
		p.CostTrendWindow = d.CostTrendWindow
	}
	if p.RenewalLeadMonths <= 0 {
		p.RenewalLeadMonths = d.RenewalLeadMonths
	}
	if p.InternalOwnership == "" {
		p.InternalOwnership = d.InternalOwnership
	}
	if p.MaintenanceMileageLimit.IsZero() {
		p.MaintenanceMileageLimit = d.MaintenanceMileageLimit
	}
	return p
}
