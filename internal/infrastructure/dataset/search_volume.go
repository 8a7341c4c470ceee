package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

// PriorityEntry is one ranked (company, role) pair of the dataset. Role is
// nil for company-level entries.
type PriorityEntry struct {
	Company string  `json:"company"`
	Role    *string `json:"role"`
	Score   int     `json:"score"`
}

// SearchVolume is the data/search_volume.json document written by the
// trends fetcher.
type SearchVolume struct {
	GeneratedAt  string                 `json:"generated_at"`
	Geography    string                 `json:"geography,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Companies    []domain.CompanyDemand `json:"companies"`
	PriorityList []PriorityEntry        `json:"priority_list"`
}

// SearchVolumeSource ranks companies from a search volume file.
type SearchVolumeSource struct {
	path string
}

var _ ports.DemandSource = (*SearchVolumeSource)(nil)

// NewSearchVolumeSource reads the dataset at path on every call.
func NewSearchVolumeSource(path string) *SearchVolumeSource {
	return &SearchVolumeSource{path: path}
}

// Load decodes the dataset file.
func (s *SearchVolumeSource) Load() (SearchVolume, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return SearchVolume{}, fmt.Errorf("read search volume: %w", err)
	}
	var doc SearchVolume
	if err := json.Unmarshal(raw, &doc); err != nil {
		return SearchVolume{}, fmt.Errorf("decode search volume %s: %w", s.path, err)
	}
	return doc, nil
}

// TopCompanies returns the n companies with the highest interview volume,
// each with its roles ordered by volume. n <= 0 returns every company.
func (s *SearchVolumeSource) TopCompanies(_ context.Context, n int) ([]domain.CompanyDemand, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return RankCompanies(doc.Companies, n), nil
}

// RankCompanies sorts by interview volume, keeping file order on ties, and
// truncates to n.
func RankCompanies(companies []domain.CompanyDemand, n int) []domain.CompanyDemand {
	ranked := make([]domain.CompanyDemand, len(companies))
	copy(ranked, companies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InterviewVolume > ranked[j].InterviewVolume
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	for i := range ranked {
		roles := make([]domain.RoleDemand, len(ranked[i].Roles))
		copy(roles, ranked[i].Roles)
		sort.SliceStable(roles, func(a, b int) bool { return roles[a].Volume > roles[b].Volume })
		ranked[i].Roles = roles
	}
	return ranked
}
