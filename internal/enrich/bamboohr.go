package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

type bambooList struct {
	Result struct {
		Jobs []struct {
			JobOpeningName string `json:"jobOpeningName"`
			JobTitle       string `json:"jobTitle"`
			Location       string `json:"location"`
		} `json:"jobs"`
	} `json:"result"`
}

// bamboohr URLs don't identify a single posting, so the best we can do is
// the first opening on the company's public list.
func (e *Enricher) bamboohr(ctx context.Context, id ats.Identity) (Result, bool, error) {
	api := fmt.Sprintf(e.BambooHRBase, id.Company) + "/careers/list"

	var list bambooList
	if err := e.getJSON(ctx, api, &list); err != nil {
		return Result{}, false, fmt.Errorf("bamboohr: %w", err)
	}
	if len(list.Result.Jobs) == 0 {
		return Result{}, false, nil
	}

	j := list.Result.Jobs[0]
	title := strings.TrimSpace(j.JobOpeningName)
	if title == "" {
		title = strings.TrimSpace(j.JobTitle)
	}
	return Result{Title: title, Location: strings.TrimSpace(j.Location)}, true, nil
}
