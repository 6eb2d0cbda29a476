package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type leverPosting struct {
	Text       string `json:"text"` // title
	Title      string `json:"title"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (e *Enricher) lever(ctx context.Context, id ats.Identity) Result {
	api := fmt.Sprintf("%s/v0/postings/%s/%s?mode=json", e.LeverAPI, id.Company, id.Job)

	var p leverPosting
	if err := e.getJSON(ctx, api, &p); err != nil {
		return unresolved(fmt.Errorf("lever: %w", err))
	}

	title := strings.TrimSpace(p.Text)
	if title == "" {
		title = strings.TrimSpace(p.Title)
	}
	return Result{Title: title, Location: strings.TrimSpace(p.Categories.Location)}
}
