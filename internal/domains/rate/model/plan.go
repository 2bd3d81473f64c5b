package model

// PlanType is the billing category of a stay.
type PlanType string

const (
	PlanShort     PlanType = "short"
	PlanOvernight PlanType = "overnight"
)

func (p PlanType) IsValid() bool {
	switch p {
	case PlanShort, PlanOvernight:
		return true
	default:
		return false
	}
}

func (p PlanType) String() string {
	return string(p)
}
