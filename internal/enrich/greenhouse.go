package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type greenhouseJob struct {
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Locations []struct {
		Name string `json:"name"`
	} `json:"locations"`
}

func (e *Enricher) greenhouse(ctx context.Context, id ats.Identity) Result {
	api := fmt.Sprintf("%s/v1/boards/%s/jobs/%s?content=true", e.GreenhouseAPI, id.Company, id.ID)

	var j greenhouseJob
	if err := e.getJSON(ctx, api, &j); err != nil {
		return unresolved(fmt.Errorf("greenhouse: %w", err))
	}

	loc := strings.TrimSpace(j.Location.Name)
	if loc == "" && len(j.Locations) > 0 {
		var names []string
		for _, l := range j.Locations {
			if n := strings.TrimSpace(l.Name); n != "" {
				names = append(names, n)
			}
		}
		loc = strings.Join(names, ", ")
	}
	return Result{Title: strings.TrimSpace(j.Title), Location: loc}
}
