package services

import (
	"net/mail"
	"strings"
)

// MatchCompany finds which of the known company names an email is about.
// It is the fallback for inbox drafts the LLM left without a company.
//
// Rules, in order: subject line, sender display name, sender domain.
func MatchCompany(subject, rawSender string, companies []string) string {
	// "Stripe Recruiting <jobs@stripe.com>" -> name="stripe recruiting", addr="jobs@stripe.com"
	senderName := ""
	senderAddr := ""
	if parsed, err := mail.ParseAddress(rawSender); err == nil {
		senderName = strings.ToLower(parsed.Name)
		senderAddr = strings.ToLower(parsed.Address)
	} else {
		senderAddr = strings.ToLower(rawSender)
	}

	domain := ""
	if parts := strings.Split(senderAddr, "@"); len(parts) == 2 {
		domain = parts[1]
	}

	subjectLower := strings.ToLower(subject)

	for _, company := range companies {
		name := strings.ToLower(strings.TrimSpace(company))
		// Very short names like "X" or "Go" would match everything.
		if len(name) < 3 {
			continue
		}
		if strings.Contains(subjectLower, name) {
			return company
		}
		if senderName != "" && strings.Contains(senderName, name) {
			return company
		}
		// Domains never contain spaces, so "creative studio" is checked as "creativestudio".
		if domain != "" && strings.Contains(domain, strings.ReplaceAll(name, " ", "")) {
			return company
		}
	}
	return ""
}
