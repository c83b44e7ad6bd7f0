// Package classify assigns application-lifecycle categories to emails. The
// AI path is primary; a keyword rule cascade is the always-available
// fallback and cross-check.
package classify

import (
	"strings"

	"github.com/jobtrail/jobtrail/internal/types"
)

// Promotional keywords, checked first. An email matching both promotional
// and interview sets is classified promotional.
var promotionalKeywords = []string{
	"job alert", "job recommendation", "unsubscribe", "click here to apply",
	"thousands of jobs", "job match", "career newsletter", "job digest",
}

// Interview scheduling keywords, checked second.
var interviewKeywords = []string{
	"interview scheduled", "interview confirmed", "please join",
	"zoom link", "meeting link", "interview invitation",
}

// ClassifyRuleBased classifies an email with a strict first-match keyword
// cascade: promotional, then interview, then job application by default.
func ClassifyRuleBased(email types.RawEmail) types.Classification {
	content := email.Body
	if content == "" {
		content = email.Snippet
	}
	full := strings.ToLower(email.Subject + " " + content)

	if containsAny(full, promotionalKeywords) {
		return types.Classification{
			Category:         types.CategoryPromotional,
			Confidence:       0.8,
			Reasoning:        "Rule-based: contains promotional keywords",
			StatusSuggestion: types.StatusApplied,
		}
	}

	if containsAny(full, interviewKeywords) {
		return types.Classification{
			Category:           types.CategoryInterview,
			Confidence:         0.7,
			Reasoning:          "Rule-based: contains interview scheduling keywords",
			InterviewScheduled: true,
			StatusSuggestion:   types.StatusInterviewScheduled,
		}
	}

	return types.Classification{
		Category:         types.CategoryApplication,
		Confidence:       0.6,
		Reasoning:        "Rule-based: appears job-related but unclear type",
		StatusSuggestion: types.StatusApplied,
	}
}

// Spam indicator phrases for the weighted promotional check.
var spamIndicators = []string{
	// Mass marketing phrases
	"unsubscribe", "click here to apply", "apply now", "thousands of jobs",
	"job alert", "job recommendation", "similar jobs", "job match",
	"career opportunities", "new job openings", "job search",

	// Promotional language
	"walk-in interview", "walk in interview", "mass hiring", "bulk hiring",
	"immediate hiring", "urgent hiring", "hiring drive",

	// Generic templates
	"dear candidate", "dear job seeker", "dear applicant",
	"congratulations! you are eligible", "your profile matches",

	// Newsletter indicators
	"newsletter", "weekly update", "job digest", "career newsletter",
}

// Legitimate indicator phrases: personalized scheduling language that mass
// campaigns rarely contain.
var legitimateIndicators = []string{
	"hi there", "hello",
	"thank you for applying", "thank you for your interest",
	"we would like to schedule", "please confirm your availability",
	"looking forward to speaking with you",

	"zoom link", "meeting link", "calendar invite", "interview scheduled for",
	"please join us at", "interview confirmation",

	"from our hr team", "hiring manager", "recruiting team",
}

// IsPromotionalEmail scores spam vs legitimate indicator phrases. Three or
// more spam hits is promotional outright; two or more legitimate hits is
// not; otherwise the higher score wins.
func IsPromotionalEmail(email types.RawEmail) bool {
	content := strings.ToLower(email.Subject + " " + email.Body)
	from := strings.ToLower(email.From)

	spamScore := 0
	for _, indicator := range spamIndicators {
		if strings.Contains(content, indicator) {
			spamScore++
		}
	}

	legitimateScore := 0
	for _, indicator := range legitimateIndicators {
		if strings.Contains(content, indicator) {
			legitimateScore++
		}
	}
	// Personalized greeting derived from the recipient-visible sender name.
	if name := nameFromAddress(from); name != "" && strings.Contains(content, "dear "+name) {
		legitimateScore++
	}

	if spamScore >= 3 {
		return true
	}
	if legitimateScore >= 2 {
		return false
	}
	return spamScore > legitimateScore
}

// Known job-board aggregators whose mail is promotional, keyed by the name
// extraction mistakes for an employer, valued by the matching sender domain.
var jobBoardDomains = map[string]string{
	"naukri":    "naukri.com",
	"shine":     "shine.com",
	"monster":   "monster.com",
	"timesjobs": "timesjobs.com",
	"foundit":   "foundit.in",
	"glassdoor": "glassdoor.com",
	"indeed":    "indeed.com",
}

// IsJobBoardSpam reports whether the extracted "company" is actually a job
// board aggregator sending from its own domain — the case where company
// extraction mistook the aggregator for an employer.
func IsJobBoardSpam(company, fromEmail string) bool {
	if company == "" {
		return false
	}
	domain, ok := jobBoardDomains[strings.ToLower(company)]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(fromEmail), domain)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// nameFromAddress derives a human name guess from an email local part.
func nameFromAddress(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	local := email[:at]
	if lt := strings.LastIndex(local, "<"); lt >= 0 {
		local = local[lt+1:]
	}
	local = strings.ReplaceAll(local, ".", " ")
	local = strings.ReplaceAll(local, "_", " ")
	return strings.TrimSpace(local)
}
