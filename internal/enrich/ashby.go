package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type ashbyBoard struct {
	Jobs        []ashbyJob `json:"jobs"`
	JobPostings []ashbyJob `json:"jobPostings"`
}

type ashbyJob struct {
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	JobURL   string          `json:"jobUrl"`
	Location json.RawMessage `json:"location"` // string or {"name": ...}
}

func (j ashbyJob) location() string {
	if len(j.Location) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(j.Location, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(j.Location, &obj); err == nil {
		return strings.TrimSpace(obj.Name)
	}
	return ""
}

// ashby fetches the company's whole job board and searches for the slug.
// ok=false sends the caller to the generic scrape; err says why, when the
// board itself was unreachable rather than merely empty.
func (e *Enricher) ashby(ctx context.Context, id ats.Identity) (Result, bool, error) {
	api := fmt.Sprintf("%s/posting-api/job-board/%s", e.AshbyAPI, id.Company)

	var board ashbyBoard
	if err := e.getJSON(ctx, api, &board); err != nil {
		return Result{}, false, fmt.Errorf("ashby: %w", err)
	}

	jobs := board.Jobs
	if len(jobs) == 0 {
		jobs = board.JobPostings
	}

	slug := strings.ToLower(id.Slug)
	for _, j := range jobs {
		if strings.ToLower(j.Slug) == slug ||
			(slug != "" && strings.Contains(strings.ToLower(j.JobURL), slug)) {
			return Result{Title: strings.TrimSpace(j.Title), Location: j.location()}, true, nil
		}
	}
	if len(jobs) > 0 {
		// No slug match but the board is live: better a board-level title
		// than nothing.
		return Result{Title: strings.TrimSpace(jobs[0].Title)}, true, nil
	}
	return Result{}, false, nil
}
