package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type recruiteeOffers struct {
	Offers []recruiteeOffer `json:"offers"`
}

type recruiteeOffer struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CareersURL string `json:"careers_url"`
	Locations  []struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"locations"`
}

func (o recruiteeOffer) location() string {
	if len(o.Locations) == 0 {
		return ""
	}
	var bits []string
	for _, s := range []string{o.Locations[0].City, o.Locations[0].Country} {
		if s = strings.TrimSpace(s); s != "" {
			bits = append(bits, s)
		}
	}
	return strings.Join(bits, ", ")
}

func (e *Enricher) recruitee(ctx context.Context, id ats.Identity) (Result, bool, error) {
	api := fmt.Sprintf(e.RecruiteeBase, id.Company) + "/api/offers/"

	var board recruiteeOffers
	if err := e.getJSON(ctx, api, &board); err != nil {
		return Result{}, false, fmt.Errorf("recruitee: %w", err)
	}

	slug := strings.ToLower(id.Slug)
	for _, o := range board.Offers {
		if strings.ToLower(o.Slug) == slug ||
			(slug != "" && strings.Contains(strings.ToLower(o.CareersURL), slug)) {
			return Result{Title: strings.TrimSpace(o.Title), Location: o.location()}, true, nil
		}
	}
	if len(board.Offers) > 0 {
		return Result{Title: strings.TrimSpace(board.Offers[0].Title)}, true, nil
	}
	return Result{}, false, nil
}
