package users

// Plan constants (single source of truth)
const (
	PlanFreemium     = "freemium"
	PlanMonthlyTrial = "monthly_trial"
	PlanYearlyTrial  = "yearly_trial"
	PlanMonthlyPaid  = "monthly_paid"
	PlanYearlyPaid   = "yearly_paid"
)

// IsTrialPlan reports whether plan is one of the two plans a user may choose
// at trial initialization. Everything else is rejected at the API edge.
func IsTrialPlan(plan string) bool {
	return plan == PlanMonthlyTrial || plan == PlanYearlyTrial
}

// IsKnownPlan reports whether plan is any plan the profile column may hold.
func IsKnownPlan(plan string) bool {
	switch plan {
	case PlanFreemium, PlanMonthlyTrial, PlanYearlyTrial, PlanMonthlyPaid, PlanYearlyPaid:
		return true
	}
	return false
}
