package extract

import "testing"

const sampleMD = `# Summer 2026 Internships

Some intro text with a link to [our site](https://example.com).

## Software Engineering Internship Roles

| Company | Role | Location | Apply |
| ------- | ---- | -------- | ----- |
[Acme](https://acme.com) | Software Intern | [![Apply](https://img.shields.io/badge/apply.svg)](https://jobs.lever.co/acme/abc123) | Remote
[Globex](https://globex.com) | Platform Intern | [![Apply](https://img.shields.io/badge/apply.svg)](https://boards.greenhouse.io/globex/jobs/456789) | New York, NY

## Closed Roles

[Hooli](https://hooli.com) | Old Intern | [![Apply](https://img.shields.io/badge/apply.svg)](https://jobs.lever.co/hooli/closed1) | Remote

## Other Internship Roles

[Initech](https://initech.com) | Generalist Intern | [![Apply](https://img.shields.io/badge/apply.svg)](https://jobs.ashbyhq.com/initech/gen-intern) | Austin, TX
`

func TestJobsSectionScoping(t *testing.T) {
	rows := Jobs(sampleMD)

	urls := map[string]bool{}
	for _, r := range rows {
		urls[r.URL] = true
	}

	if !urls["https://jobs.lever.co/acme/abc123"] {
		t.Error("missing lever candidate from recognized section")
	}
	if !urls["https://jobs.ashbyhq.com/initech/gen-intern"] {
		t.Error("missing ashby candidate from Other Internship Roles")
	}
	if urls["https://jobs.lever.co/hooli/closed1"] {
		t.Error("candidate from unrecognized section should not be extracted")
	}
}

func TestJobsCompanyAndRoleLocation(t *testing.T) {
	rows := Jobs(sampleMD)
	if len(rows) == 0 {
		t.Fatal("no rows")
	}

	var acme *Candidate
	for i := range rows {
		if rows[i].URL == "https://jobs.lever.co/acme/abc123" {
			acme = &rows[i]
		}
	}
	if acme == nil {
		t.Fatal("acme row not found")
	}
	if acme.Company != "Acme" {
		t.Errorf("company = %q, want Acme", acme.Company)
	}
	if acme.Location != "Remote" {
		t.Errorf("location = %q, want Remote", acme.Location)
	}
}

func TestApplyURLIsLastATSLink(t *testing.T) {
	md := "## Software Engineering Internship Roles\n" +
		"[Img](https://cdn.example/x.png) [Lever](https://jobs.lever.co/acme/123)\n"
	rows := Jobs(md)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].URL != "https://jobs.lever.co/acme/123" {
		t.Errorf("apply url = %q, want the lever link", rows[0].URL)
	}
}

func TestTopListDiscarded(t *testing.T) {
	md := "## Software Engineering Internship Roles\n" +
		"[Apply](https://simplify.jobs/top-list/summer2026)\n"
	if rows := Jobs(md); len(rows) != 0 {
		t.Errorf("top-list URL must be discarded, got %d rows", len(rows))
	}
}

func TestTopListAsLastLinkDiscardsWholeRow(t *testing.T) {
	// The apply link is always the last ATS link. When that one is the
	// top-list placeholder the row is gone; the earlier real ATS link
	// must not be promoted in its place.
	md := "## Software Engineering Internship Roles\n" +
		"[Acme](https://jobs.lever.co/acme/abc123) [Apply](https://simplify.jobs/top-list/summer2026)\n"
	if rows := Jobs(md); len(rows) != 0 {
		t.Errorf("row with top-list apply link must be discarded, got %+v", rows)
	}
}

func TestGenericLabelFallsBackToURLCompany(t *testing.T) {
	md := "## Software Engineering Internship Roles\n" +
		"[Apply Here](https://jobs.lever.co/acme/abc123)\n"
	rows := Jobs(md)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Company != "Acme" {
		t.Errorf("company = %q, want Acme (guessed from lever path)", rows[0].Company)
	}
}

func TestGuessCompany(t *testing.T) {
	cases := map[string]string{
		"https://jobs.lever.co/stripe/123":            "Stripe",
		"https://boards.greenhouse.io/airbnb/jobs/99": "Airbnb",
		"https://acme.recruitee.com/o/intern":         "Acme",
		"https://careers.example.com/x":               "careers.example.com",
	}
	for in, want := range cases {
		if got := GuessCompany(in); got != want {
			t.Errorf("GuessCompany(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFallbackModeScansWholeFile(t *testing.T) {
	// No recognized headings at all: the extractor rescans everything.
	md := "# Totally Different Format\n" +
		"[Acme](https://acme.com) [Apply](https://jobs.lever.co/acme/abc123)\n"
	rows := Jobs(md)
	if len(rows) != 1 {
		t.Fatalf("fallback mode got %d rows, want 1", len(rows))
	}
	if rows[0].Role != "" || rows[0].Location != "" {
		t.Errorf("fallback rows keep empty role/location, got %q/%q", rows[0].Role, rows[0].Location)
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	md := "## Software Engineering Internship Roles\n" +
		"[Acme](https://acme.com) | First | [Apply](https://jobs.lever.co/acme/abc123) | Remote\n" +
		"[ACME ](https://acme.com) | Second | [Apply](https://jobs.lever.co/acme/abc123) | Remote\n"
	rows := Jobs(md)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 after dedupe", len(rows))
	}
	if rows[0].Company != "Acme" {
		t.Errorf("company = %q, want first occurrence Acme", rows[0].Company)
	}
}

func TestAnchorTagLinks(t *testing.T) {
	md := "## Software Engineering Internship Roles\n" +
		`<a href="https://acme.com">Acme</a> <a href="https://jobs.lever.co/acme/1">Apply</a>` + "\n"
	rows := Jobs(md)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Company != "Acme" || rows[0].URL != "https://jobs.lever.co/acme/1" {
		t.Errorf("got %+v", rows[0])
	}
}
