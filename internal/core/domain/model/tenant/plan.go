package tenant

import (
	"fmt"

	"foodorders/internal/pkg/errs"
)

// Plan is the subscription tier of a tenant. It determines how many orders
// may be active concurrently and whether the tenant may open realtime
// dashboard connections.
type Plan int

const (
	// PlanUnknown represents an invalid or undefined plan.
	PlanUnknown Plan = iota

	// PlanFree allows up to 10 active orders and no realtime connections.
	PlanFree

	// PlanBasic allows up to 100 active orders and realtime connections.
	PlanBasic

	// PlanPro allows unlimited active orders and realtime connections.
	PlanPro
)

// planLimits holds the per-plan quota and capability flags.
// maxActiveOrders < 0 means unlimited.
type planLimits struct {
	maxActiveOrders int
	realtime        bool
}

// getPlanLimits is the per-plan policy table, fixed at startup.
func getPlanLimits() map[Plan]planLimits {
	return map[Plan]planLimits{
		PlanFree:  {maxActiveOrders: 10, realtime: false},
		PlanBasic: {maxActiveOrders: 100, realtime: true},
		PlanPro:   {maxActiveOrders: -1, realtime: true},
	}
}

func getPlanStrings() map[Plan]string {
	return map[Plan]string{
		PlanUnknown: "UNKNOWN",
		PlanFree:    "FREE",
		PlanBasic:   "BASIC",
		PlanPro:     "PRO",
	}
}

func getValidPlanStrings() map[Plan]string {
	//nolint:exhaustive // PlanUnknown is intentionally excluded as it's invalid
	return map[Plan]string{
		PlanFree:  "FREE",
		PlanBasic: "BASIC",
		PlanPro:   "PRO",
	}
}

// PlanFromString parses a wire-format plan name ("FREE", "BASIC", "PRO").
func PlanFromString(s string) (Plan, error) {
	for plan, name := range getValidPlanStrings() {
		if name == s {
			return plan, nil
		}
	}
	return PlanUnknown, errs.NewValueIsInvalidErrorWithCause(
		"plan",
		fmt.Errorf("%q is not a valid plan", s),
	)
}

// Validate checks that the Plan is one of the defined tiers.
func (p Plan) Validate() error {
	if _, ok := getValidPlanStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"plan",
			fmt.Errorf("%d is not a valid plan", p),
		)
	}
	return nil
}

// String returns the wire-format name of the plan.
func (p Plan) String() string {
	if str, ok := getPlanStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// MaxActiveOrders returns the plan's active-order quota. When unlimited is
// true the limit value is meaningless and must be ignored.
func (p Plan) MaxActiveOrders() (limit int, unlimited bool) {
	limits, ok := getPlanLimits()[p]
	if !ok {
		return 0, false
	}
	if limits.maxActiveOrders < 0 {
		return 0, true
	}
	return limits.maxActiveOrders, false
}

// Realtime reports whether the plan includes live dashboard connections.
func (p Plan) Realtime() bool {
	limits, ok := getPlanLimits()[p]
	return ok && limits.realtime
}
