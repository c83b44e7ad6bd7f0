package extract

import (
	"net/mail"
	"regexp"
	"strings"
)

// Domains belonging to personal mail providers. A sender address on one of
// these says nothing about the employer.
var personalProviders = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"aol.com":        true,
	"icloud.com":     true,
	"protonmail.com": true,
	"zoho.com":       true,
}

// Providers whose display names often carry "<Company> Recruiter". Only
// these get the display-name treatment; other personal providers fall back
// to their domain-derived name.
var recruiterNameProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"outlook.com": true,
}

var (
	wwwPrefix = regexp.MustCompile(`^www\.`)
	tldSuffix = regexp.MustCompile(`\.(com|org|net|edu|gov|co\.uk|co|io|ai|tech)$`)
)

// Company mention patterns, tried in priority order. First match wins.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)interview\s+(?:with|at)\s+([a-z][a-z&\s]+?)(?:\s+team|\s+for|\s+on|\s+scheduled|\.|\n|$)`),
	regexp.MustCompile(`(?im)(?:from|at)\s+([a-z][a-z&\s]+?)\s+(?:team|company|corporation|inc|llc)`),
	regexp.MustCompile(`(?im)([a-z][a-z&\s]+?)\s+interview\s+(?:invitation|scheduled|confirmation)`),
	regexp.MustCompile(`(?im)position\s+at\s+([a-z][a-z&\s]+?)(?:\s+for|\s+in|\s+as|\.|\n|$)`),
	regexp.MustCompile(`(?im)opportunity\s+at\s+([a-z][a-z&\s]+?)(?:\s+for|\s+in|\s+as|\.|\n|$)`),
	regexp.MustCompile(`(?im)role\s+at\s+([a-z][a-z&\s]+?)(?:\s+for|\s+in|\s+as|\.|\n|$)`),
}

// Generic words a company pattern can accidentally capture.
var companyStopWords = map[string]bool{
	"The": true, "A": true, "An": true, "This": true, "That": true,
	"Your": true, "Our": true, "My": true, "His": true, "Her": true,
	"Team": true, "Interview": true, "Phone": true, "Video": true,
	"Zoom": true, "Call": true, "Meeting": true, "Position": true,
	"Role": true, "Opportunity": true, "Job": true, "Application": true,
}

// Role mention patterns, tried in priority order.
var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:for\s+the\s+|for\s+)([a-z\s]+?)(?:\s+position|\s+role|\s+interview)`),
	regexp.MustCompile(`(?i)(?:software|senior|junior|principal|lead|staff)\s+([a-z\s]+?)(?:\s+position|\s+role|\s+interview)`),
	regexp.MustCompile(`(?i)position:\s*([a-z\s]+?)(?:\n|$|\.)`),
	regexp.MustCompile(`(?i)role:\s*([a-z\s]+?)(?:\n|$|\.)`),
	regexp.MustCompile(`(?i)([a-z\s]+?)(?:\s+engineer|\s+developer|\s+analyst|\s+manager|\s+director)`),
}

var roleNoiseWords = map[string]bool{
	"the": true, "this": true, "your": true, "our": true,
}

// ExtractCompany derives a company name from the sender header, subject and
// body. Strategies run in a fixed priority order; an empty result means no
// strategy matched.
func ExtractCompany(fromHeader, subject, body string) string {
	// Strategy 1: sender domain, unless it is a personal mail provider.
	if c := companyFromAddress(fromHeader); c != "" {
		return c
	}

	// Strategy 2: company mentions in subject and body text.
	if c := companyFromText(subject, body); c != "" {
		return c
	}

	// Strategy 3: a few personal providers often carry the company in a
	// "<Company> Recruiter" display name.
	addr, err := mail.ParseAddress(fromHeader)
	if err != nil || !strings.Contains(addr.Address, "@") {
		return ""
	}
	domain := strings.ToLower(addr.Address[strings.LastIndex(addr.Address, "@")+1:])
	if recruiterNameProviders[domain] {
		name := strings.ToLower(addr.Name)
		if idx := strings.Index(name, "recruiter"); idx > 0 {
			if c := strings.TrimSpace(name[:idx]); c != "" {
				return titleCase(c)
			}
		}
		return ""
	}

	// Strategy 4: raw domain-derived name, personal providers included.
	return companyFromDomain(domain)
}

// companyFromAddress extracts a company from the sender's domain, rejecting
// personal mail providers.
func companyFromAddress(fromHeader string) string {
	if fromHeader == "" {
		return ""
	}
	address := fromHeader
	if addr, err := mail.ParseAddress(fromHeader); err == nil {
		address = addr.Address
	}
	idx := strings.LastIndex(address, "@")
	if idx < 0 {
		return ""
	}
	domain := strings.ToLower(address[idx+1:])
	if personalProviders[domain] {
		return ""
	}
	return companyFromDomain(domain)
}

// companyFromDomain turns "www.tech-corp.io" into "Tech Corp".
func companyFromDomain(domain string) string {
	name := wwwPrefix.ReplaceAllString(strings.ToLower(domain), "")
	name = tldSuffix.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return titleCase(name)
}

// companyFromText pattern-matches subject+body for company mentions.
func companyFromText(subject, body string) string {
	fullText := subject + " " + body
	for _, re := range companyPatterns {
		for _, m := range re.FindAllStringSubmatch(fullText, -1) {
			company := titleCase(strings.Join(strings.Fields(m[1]), " "))
			if len(company) > 2 && !companyStopWords[company] {
				return company
			}
		}
	}
	return ""
}

// ExtractJobRole derives a job title from subject and body text. An empty
// result means no pattern matched.
func ExtractJobRole(subject, body string) string {
	fullText := subject + " " + body
	for _, re := range rolePatterns {
		for _, m := range re.FindAllStringSubmatch(fullText, -1) {
			role := strings.Join(strings.Fields(m[1]), " ")
			if len(role) > 2 && !roleNoiseWords[strings.ToLower(role)] {
				return titleCase(role)
			}
		}
	}
	return ""
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
