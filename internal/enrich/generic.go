package enrich

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var descLocationRx = regexp.MustCompile(`(?i)(Remote|Hybrid|Onsite|[A-Za-z .'-]+,\s*[A-Z]{2}|USA|Canada|UK|Europe)`)

// generic scrapes Open Graph / Twitter-card metadata off the apply page
// itself. Works for workday, simplify, oracle and anything we don't have
// a structured endpoint for.
func (e *Enricher) generic(ctx context.Context, url string) Result {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		return unresolved(fmt.Errorf("generic: %w", err))
	}

	title := metaContent(doc, "og:title", "twitter:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	desc := metaContent(doc, "og:description", "twitter:description")
	loc := ""
	if m := descLocationRx.FindString(desc); m != "" {
		loc = strings.TrimSpace(m)
	}

	return Result{Title: title, Location: loc}
}

// metaContent returns the first non-empty content attribute among the
// given meta names, checking both property= and name= forms.
func metaContent(doc *goquery.Document, names ...string) string {
	for _, n := range names {
		for _, sel := range []string{
			fmt.Sprintf(`meta[property=%q]`, n),
			fmt.Sprintf(`meta[name=%q]`, n),
		} {
			if v, ok := doc.Find(sel).First().Attr("content"); ok {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
