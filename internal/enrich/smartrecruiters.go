package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type smartRecruitersPosting struct {
	Name     string `json:"name"`
	Location struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
}

func (e *Enricher) smartrecruiters(ctx context.Context, id ats.Identity) Result {
	api := fmt.Sprintf("%s/v1/companies/%s/postings/%s", e.SmartRecruitersAPI, id.Company, id.ID)

	var p smartRecruitersPosting
	if err := e.getJSON(ctx, api, &p); err != nil {
		return unresolved(fmt.Errorf("smartrecruiters: %w", err))
	}

	var pieces []string
	for _, s := range []string{p.Location.City, p.Location.Region, p.Location.Country} {
		if s = strings.TrimSpace(s); s != "" {
			pieces = append(pieces, s)
		}
	}
	return Result{Title: strings.TrimSpace(p.Name), Location: strings.Join(pieces, ", ")}
}
