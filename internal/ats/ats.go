// Package ats classifies apply URLs by hiring-platform vendor.
package ats

import (
	"net/url"
	"strings"
)

// Vendor is the closed set of platforms we know how to talk to.
// Anything unrecognized falls through to VendorGeneric.
type Vendor string

const (
	VendorLever           Vendor = "lever"
	VendorGreenhouse      Vendor = "greenhouse"
	VendorAshby           Vendor = "ashby"
	VendorSmartRecruiters Vendor = "smartrecruiters"
	VendorRecruitee       Vendor = "recruitee"
	VendorBambooHR        Vendor = "bamboohr"
	VendorWorkday         Vendor = "workday"
	VendorSimplify        Vendor = "simplify"
	VendorOracle          Vendor = "oracle"
	VendorGeneric         Vendor = "generic"
)

// Identity is what Classify extracts from an apply URL: the vendor plus
// whatever identifiers the vendor's URL shape carries (company slug, job
// id, posting slug). Derived purely from the URL, never persisted.
type Identity struct {
	Vendor  Vendor
	Company string
	Job     string // lever job id/slug
	ID      string // greenhouse/smartrecruiters numeric id
	Slug    string // ashby/recruitee posting slug
}

// Domains lists every ATS host we treat as a real apply link. A URL whose
// host matches none of these is not a candidate.
var Domains = []string{
	"simplify.jobs",
	"lever.co",
	"greenhouse.io",
	"myworkdayjobs.com",
	"ashbyhq.com",
	"smartrecruiters.com",
	"recruitee.com",
	"bamboohr.com",
	"icims.com",
	"workable.com",
	"jobvite.com",
	"oraclecloud.com",
	"adp.com",
	"dayforcehcm.com",
	"workday.com",
}

// IsApplyURL reports whether u points at a known ATS domain. Whether the
// URL is actually usable (not a placeholder page) is the row parser's
// call, made after it has picked the row's apply link.
func IsApplyURL(u string) bool {
	lu := strings.ToLower(u)
	for _, d := range Domains {
		if strings.Contains(lu, d) {
			return true
		}
	}
	return false
}

// Classify inspects the URL's host and path and returns the vendor identity.
// It never fails; a URL we cannot place is VendorGeneric with no fields.
func Classify(raw string) Identity {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return Identity{Vendor: VendorGeneric}
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	parts := pathSegments(u.Path)

	switch {
	case hostHas(host, "lever.co") && len(parts) >= 2:
		return Identity{Vendor: VendorLever, Company: parts[0], Job: parts[1]}

	case hostHas(host, "greenhouse.io") && len(parts) >= 3 && parts[1] == "jobs":
		id := ""
		if isDigits(parts[2]) {
			id = parts[2]
		}
		return Identity{Vendor: VendorGreenhouse, Company: parts[0], ID: id}

	case hostHas(host, "ashbyhq.com") && len(parts) >= 2:
		return Identity{Vendor: VendorAshby, Company: parts[0], Slug: parts[len(parts)-1]}

	case hostHas(host, "smartrecruiters.com") && len(parts) >= 2:
		return Identity{
			Vendor:  VendorSmartRecruiters,
			Company: parts[0],
			ID:      leadingDigits(parts[len(parts)-1]),
		}

	case strings.HasSuffix(host, "recruitee.com"):
		slug := ""
		if len(parts) > 0 {
			slug = parts[len(parts)-1]
		}
		return Identity{Vendor: VendorRecruitee, Company: subdomain(host), Slug: slug}

	case strings.HasSuffix(host, "bamboohr.com"):
		return Identity{Vendor: VendorBambooHR, Company: subdomain(host)}

	case hostHas(host, "myworkdayjobs.com") || hostHas(host, "workday.com"):
		// Many tenant-specific variants; resolved via the generic fallback.
		return Identity{Vendor: VendorWorkday}

	case hostHas(host, "simplify.jobs"):
		return Identity{Vendor: VendorSimplify}

	case hostHas(host, "oraclecloud.com"):
		return Identity{Vendor: VendorOracle}
	}

	return Identity{Vendor: VendorGeneric}
}

func pathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hostHas(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func subdomain(host string) string {
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
