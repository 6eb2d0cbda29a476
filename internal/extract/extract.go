// Package extract turns the crowd-sourced internship README into an
// ordered list of job candidates. The document is semi-structured
// markdown: role-category sections, one table row per posting, apply
// links usually wrapped in badge images.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/ats"
)

// Candidate is one posting pulled out of the source document. Company may
// be a heuristic guess and role/location are best-effort; only URL is
// trustworthy. Candidates are rebuilt from scratch every scan.
type Candidate struct {
	Company  string
	URL      string
	Role     string
	Location string
}

// Sections are the role-category headings we scan inside. Matching is by
// containment after normalization, so emoji and badge counts in the real
// headings don't matter.
var Sections = []string{
	"Software Engineering Internship Roles",
	"Product Management Internship Roles",
	"Data Science, AI & Machine Learning Internship Roles",
	"Quantitative Finance Internship Roles",
	"Hardware Engineering Internship Roles",
	"Other Internship Roles",
}

var (
	imageLinkRx = regexp.MustCompile(`\[!\[[^\]]*\]\([^)]+\)\]\((https?://[^)]+)\)`)
	imageRx     = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkRx    = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)]+)\)`)
	anchorRx    = regexp.MustCompile(`(?i)<a[^>]*href=["'](https?://[^"']+)["'][^>]*>(.*?)</a>`)

	genericLabelRx = regexp.MustCompile(`(?i)apply|here|link|^image:`)
	headingNormRx  = regexp.MustCompile(`[^a-z0-9,& ]+`)
	locationRx     = regexp.MustCompile(`(?i)(remote|hybrid|onsite|[A-Za-z]+\s*,\s*[A-Z]{2}|usa|canada|uk|europe)`)
)

// separators tried when splitting leftover row text into role/location.
var separators = []string{" | ", " — ", " - ", " · ", " • "}

type link struct {
	Text string
	URL  string
}

// Jobs parses the full markdown document. Lines are only considered while
// inside a recognized section; if that yields nothing (the source format
// drifted), the whole document is rescanned ignoring headings. The result
// is deduplicated by (company, url), first occurrence wins.
func Jobs(md string) []Candidate {
	rows := scanSections(md)
	if len(rows) == 0 {
		rows = scanWholeFile(md)
	}
	return dedupe(rows)
}

func scanSections(md string) []Candidate {
	var rows []Candidate
	inSection := false

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			inSection = isRolesHeading(line)
			continue
		}
		if !inSection || !strings.Contains(line, "http") {
			continue
		}
		if c, ok := parseRow(line, true); ok {
			rows = append(rows, c)
		}
	}
	return rows
}

// scanWholeFile is the fallback when no recognized section produced rows.
// Role/location stay empty here; without table context the leftover text
// is too noisy to split.
func scanWholeFile(md string) []Candidate {
	var rows []Candidate
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if !strings.Contains(line, "http") {
			continue
		}
		if c, ok := parseRow(line, false); ok {
			rows = append(rows, c)
		}
	}
	return rows
}

func parseRow(line string, withRoleLocation bool) (Candidate, bool) {
	line = normalizeImages(line)
	links := linksInLine(line)
	if len(links) == 0 {
		return Candidate{}, false
	}

	// Apply URL = last link pointing at a known ATS domain. If that link
	// is the aggregator's top-list placeholder the whole row goes; an
	// earlier ATS link never stands in for it.
	appURL := ""
	for i := len(links) - 1; i >= 0; i-- {
		if ats.IsApplyURL(links[i].URL) {
			appURL = strings.TrimSpace(links[i].URL)
			break
		}
	}
	if appURL == "" || strings.Contains(strings.ToLower(appURL), "top-list") {
		return Candidate{}, false
	}

	// Company = first link text that isn't a generic label.
	company := ""
	for _, l := range links {
		if l.Text != "" && !genericLabelRx.MatchString(l.Text) {
			company = strings.TrimSpace(l.Text)
			break
		}
	}
	if company == "" {
		company = GuessCompany(appURL)
	}

	c := Candidate{Company: company, URL: appURL}
	if withRoleLocation {
		c.Role, c.Location = roleLocation(line)
	}
	return c, true
}

// normalizeImages collapses [![badge](img)](apply) into [Apply](apply) so
// the apply URL survives, then drops standalone images.
func normalizeImages(line string) string {
	line = imageLinkRx.ReplaceAllString(line, "[Apply]($1)")
	return imageRx.ReplaceAllString(line, " ")
}

func linksInLine(line string) []link {
	var out []link
	for _, m := range mdLinkRx.FindAllStringSubmatch(line, -1) {
		out = append(out, link{Text: m[1], URL: m[2]})
	}
	for _, m := range anchorRx.FindAllStringSubmatch(line, -1) {
		out = append(out, link{Text: m[2], URL: m[1]})
	}
	return out
}

func isRolesHeading(line string) bool {
	title := strings.TrimSpace(line)
	title = strings.TrimLeft(title, "#")
	title = strings.TrimSpace(title)
	norm := headingNormRx.ReplaceAllString(strings.ToLower(title), "")
	for _, sec := range Sections {
		want := headingNormRx.ReplaceAllString(strings.ToLower(sec), "")
		if strings.Contains(norm, want) {
			return true
		}
	}
	return false
}

// roleLocation strips the links out of the row and tries to split what's
// left into role text and a location-looking right side.
func roleLocation(line string) (role, location string) {
	text := mdLinkRx.ReplaceAllString(line, "$1")
	text = CleanText(text)
	text = strings.Trim(text, " -—–·|:")

	for _, sep := range separators {
		i := strings.LastIndex(text, sep)
		if i < 0 {
			continue
		}
		left, right := text[:i], text[i+len(sep):]
		if locationRx.MatchString(right) {
			return strings.TrimSpace(left), strings.TrimSpace(right)
		}
	}
	return "", ""
}

// GuessCompany derives a fallback company name from the apply URL when no
// link text names it. Best-effort; accepted as sometimes wrong.
func GuessCompany(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch {
	case strings.Contains(host, "lever.co") && len(parts) > 0:
		return capitalize(parts[0])
	case strings.Contains(host, "greenhouse.io") && len(parts) > 0:
		return capitalize(parts[0])
	case strings.HasSuffix(host, "recruitee.com"):
		return capitalize(strings.SplitN(host, ".", 2)[0])
	}
	return host
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CleanText collapses whitespace and non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

func dedupe(rows []Candidate) []Candidate {
	seen := map[[2]string]bool{}
	out := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		key := [2]string{strings.ToLower(strings.TrimSpace(r.Company)), strings.TrimSpace(r.URL)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
