package watch

import (
	"strings"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/config"
)

// passes applies the filter lists to one enriched candidate. Blocklist
// wins over allowlist; keyword checks run over company+title+location;
// locations_any is a hard filter, so an unresolved (empty) location fails
// it when the list is set.
func passes(f config.Filters, company, title, location string) bool {
	text := strings.ToLower(strings.Join([]string{company, title, location}, " "))
	lc := strings.ToLower(company)

	if containsFold(f.CompanyBlocklist, lc) {
		return false
	}
	if len(f.CompanyAllowlist) > 0 && !containsFold(f.CompanyAllowlist, lc) {
		return false
	}
	if anyKeywordIn(f.ExcludeKeywords, text) {
		return false
	}
	if len(f.IncludeKeywords) > 0 && !anyKeywordIn(f.IncludeKeywords, text) {
		return false
	}
	if len(f.LocationsAny) > 0 && !anyKeywordIn(f.LocationsAny, strings.ToLower(location)) {
		return false
	}
	return true
}

// isPriority flags postings worth an urgent notification. Checked over
// company+title only; location never makes something urgent.
func isPriority(f config.Filters, company, title string) bool {
	if containsFold(f.PriorityCompanies, strings.ToLower(company)) {
		return true
	}
	t := strings.ToLower(company + " " + title)
	return anyKeywordIn(f.PriorityKeywords, t)
}

func containsFold(list []string, lowered string) bool {
	if lowered == "" {
		return false
	}
	for _, v := range list {
		if strings.ToLower(v) == lowered {
			return true
		}
	}
	return false
}

func anyKeywordIn(keywords []string, loweredText string) bool {
	for _, k := range keywords {
		if strings.Contains(loweredText, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
