package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
)

type Action string

const (
	ActionRenewLicense            Action = "Renew License"
	ActionRenewSoon               Action = "Renew Soon"
	ActionTransferAndRenewLicense Action = "Ownership Transfer and Renew License"
	ActionTransferAndRenewSoon    Action = "Ownership Transfer and Renew Soon"
	ActionOwnershipTransfer       Action = "Ownership Transfer"
	ActionNoActionNeeded          Action = "No Action Needed"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// LicenseState is a license EndDate compared with today.
type LicenseState string

const (
	LicenseExpired  LicenseState = "expired"
	LicenseExpiring LicenseState = "expiring"
	LicenseValid    LicenseState = "valid"
	// LicenseMissing means the vehicle has no license record. It never
	// matches the expired or expiring rows.
	LicenseMissing LicenseState = "missing"
)

// OwnershipClass is the current ownership relative to the internal label.
type OwnershipClass string

const (
	OwnershipInternal OwnershipClass = "internal"
	OwnershipExternal OwnershipClass = "external"
	OwnershipUnset    OwnershipClass = "unset"
)

// ActionRule is one row of the precedence table.
type ActionRule struct {
	Action    Action
	Priority  Priority
	Evaluator func(license LicenseState, owner OwnershipClass) bool
}

func inHouse(o OwnershipClass) bool { return o == OwnershipInternal || o == OwnershipUnset }

// ActionRules is evaluated top to bottom; the first match wins.
var ActionRules = []ActionRule{
	{
		Action:   ActionRenewLicense,
		Priority: PriorityHigh,
		Evaluator: func(l LicenseState, o OwnershipClass) bool {
			return l == LicenseExpired && inHouse(o)
		},
	},
	{
		Action:   ActionRenewSoon,
		Priority: PriorityMedium,
		Evaluator: func(l LicenseState, o OwnershipClass) bool {
			return l == LicenseExpiring && inHouse(o)
		},
	},
	{
		Action:   ActionTransferAndRenewLicense,
		Priority: PriorityHigh,
		Evaluator: func(l LicenseState, o OwnershipClass) bool {
			return l == LicenseExpired && o == OwnershipExternal
		},
	},
	{
		Action:   ActionTransferAndRenewSoon,
		Priority: PriorityMedium,
		Evaluator: func(l LicenseState, o OwnershipClass) bool {
			return l == LicenseExpiring && o == OwnershipExternal
		},
	},
	{
		Action:   ActionOwnershipTransfer,
		Priority: PriorityLow,
		Evaluator: func(_ LicenseState, o OwnershipClass) bool {
			return o == OwnershipExternal
		},
	},
}

// Classify returns the first matching rule's action, or No Action Needed.
func Classify(license LicenseState, owner OwnershipClass) (Action, Priority) {
	for _, rule := range ActionRules {
		if rule.Evaluator(license, owner) {
			return rule.Action, rule.Priority
		}
	}
	return ActionNoActionNeeded, PriorityLow
}

// LicenseStateOn compares endDate with today at day granularity.
// Expiring covers today through today+leadMonths inclusive.
func LicenseStateOn(endDate *time.Time, today time.Time, leadMonths int) LicenseState {
	if endDate == nil {
		return LicenseMissing
	}
	end := dateOf(*endDate)
	t := dateOf(today)
	switch {
	case end.Before(t):
		return LicenseExpired
	case !end.After(t.AddDate(0, leadMonths, 0)):
		return LicenseExpiring
	default:
		return LicenseValid
	}
}

// ClassifyOwnership maps an ownership label onto internal, external or unset.
func ClassifyOwnership(ownership *string, internalLabel string) OwnershipClass {
	switch {
	case ownership == nil || *ownership == "":
		return OwnershipUnset
	case *ownership == internalLabel:
		return OwnershipInternal
	default:
		return OwnershipExternal
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ActionRow is a vehicle that needs administrative attention.
type ActionRow struct {
	VehicleID string `json:"vehicle_id"`
	VehicleAttributes

	Branch         *string       `json:"branch"`
	LicenseEndDate *time.Time    `json:"license_end_date"`
	Ownership      *string       `json:"ownership"`
	Condition      *v1.Condition `json:"condition"`
	LicenseState   LicenseState  `json:"license_state"`
	Action         Action        `json:"action"`
	Priority       Priority      `json:"priority"`
}

// Actions classifies every known vehicle and returns the ones needing action,
// skipping No Action Needed and Inactive vehicles. Rows are sorted by
// priority (High first) and then VehicleID.
func (e *Engine) Actions(snap *v1.Snapshot, today time.Time, filter Filter) []ActionRow {
	ix := newFleetIndex(snap)
	p := e.params

	var rows []ActionRow
	for _, id := range ix.vehicleIDs() {
		if !filter.matchesVehicle(ix, id) {
			continue
		}

		row := ActionRow{VehicleID: id, VehicleAttributes: ix.attributes(id)}
		if lic, ok := ix.licenses[id]; ok {
			end := lic.EndDate
			row.LicenseEndDate = &end
		}
		if own, ok := ix.ownerships[id]; ok {
			label := own.Ownership
			row.Ownership = &label
		}
		if alloc, ok := ix.allocations[id]; ok {
			cond := alloc.Condition
			row.Condition = &cond
			if alloc.Branch != "" {
				branch := alloc.Branch
				row.Branch = &branch
			}
		}

		if row.Condition != nil && *row.Condition == v1.ConditionInactive {
			continue
		}

		row.LicenseState = LicenseStateOn(row.LicenseEndDate, today, p.RenewalLeadMonths)
		row.Action, row.Priority = Classify(row.LicenseState, ClassifyOwnership(row.Ownership, p.InternalOwnership))
		if row.Action == ActionNoActionNeeded {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if ri, rj := rows[i].Priority.rank(), rows[j].Priority.rank(); ri != rj {
			return ri < rj
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows
}
