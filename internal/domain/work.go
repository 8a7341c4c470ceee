package domain

// WorkItem is one unit of orchestration: a company, optionally paired with
// a role.
type WorkItem struct {
	CompanySlug string `json:"companySlug"`
	CompanyName string `json:"companyName,omitempty"`
	RoleSlug    string `json:"roleSlug,omitempty"`
}

// Key is the ledger key of the item.
func (w WorkItem) Key() string {
	return UnitKey(w.CompanySlug, w.RoleSlug)
}

// RoleDemand is the interview volume of one role at a company.
type RoleDemand struct {
	Slug   string `json:"slug"`
	Volume int    `json:"volume"`
}

// CompanyDemand is a company entry of the search-volume dataset.
type CompanyDemand struct {
	Name            string       `json:"name"`
	Slug            string       `json:"slug"`
	Category        string       `json:"category"`
	InterviewVolume int          `json:"interview_volume"`
	Roles           []RoleDemand `json:"roles"`
}
