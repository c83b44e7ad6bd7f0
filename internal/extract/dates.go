// Package extract derives structured fields (interview dates, company, role)
// from unstructured email text using layered heuristics.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// staleGrace is how far into the past an extracted date may fall before it
// is discarded as a past-tense reference ("your interview last Tuesday").
const staleGrace = 24 * time.Hour

// Common scheduling phrasings seen in interview emails. Matched against the
// lowercased text; each match becomes one candidate phrase.
var datePatterns = []*regexp.Regexp{
	// "Monday, January 15th at 2:00 PM"
	regexp.MustCompile(`(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday),?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?\s+at\s+\d{1,2}:\d{2}\s*(?:am|pm)`),
	// "January 15, 2024 at 2:00 PM"
	regexp.MustCompile(`(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\s+at\s+\d{1,2}:\d{2}\s*(?:am|pm)`),
	// "Jan 15 at 2:00 PM"
	regexp.MustCompile(`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\s+\d{1,2}\s+at\s+\d{1,2}:\d{2}\s*(?:am|pm)`),
	// "tomorrow at 2:00 PM", "next Monday at 10:30 am"
	regexp.MustCompile(`(?:tomorrow|next\s+(?:monday|tuesday|wednesday|thursday|friday))\s+at\s+\d{1,2}:\d{2}\s*(?:am|pm)`),
	// "between 2:00-3:00 PM on January 15"
	regexp.MustCompile(`between\s+\d{1,2}:\d{2}\s*(?:am|pm)?\s*-\s*\d{1,2}:\d{2}\s*(?:am|pm)\s+on\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}`),
	// ISO timestamps
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}t\d{2}:\d{2}:\d{2}`),
}

var monthTokens = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var (
	ordinalSuffix = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\b`)
	isoTimestamp  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})t(\d{2}:\d{2}:\d{2})$`)
)

// newNLParser builds a natural-language date parser. Parsers are cheap and
// stateless; callers of ExtractDates share one package-level instance.
func newNLParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

var nlParser = newNLParser()

// Strict layouts, tried against the raw candidate first and then against a
// normalized form (lowercased, ordinals and commas stripped, month/weekday
// tokens re-capitalized). Year-less layouts resolve against the reference
// year with a prefer-future adjustment.
var strictLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02T15:04:05", true},
	{"January 2 2006 at 3:04 pm", true},
	{"Monday January 2 at 3:04 pm", false},
	{"January 2 at 3:04 pm", false},
	{"Jan 2 at 3:04 pm", false},
	{"January 2 2006", true},
	{"January 2", false},
	{"Jan 2", false},
}

// ExtractDates scans free text for date/time expressions and returns them as
// absolute timestamps, deduplicated and sorted ascending. Dates earlier than
// reference−24h are discarded; candidates that fail to parse are skipped
// silently.
func ExtractDates(text string, reference time.Time) []time.Time {
	lower := strings.ToLower(text)

	var candidates []string
	for _, re := range datePatterns {
		candidates = append(candidates, re.FindAllString(lower, -1)...)
	}

	// Broader heuristic: any token containing a month abbreviation seeds a
	// candidate phrase from its surrounding window of words.
	words := strings.Fields(text)
	for i, word := range words {
		lw := strings.ToLower(word)
		for _, m := range monthTokens {
			if strings.Contains(lw, m) {
				start := i - 3
				if start < 0 {
					start = 0
				}
				end := i + 4
				if end > len(words) {
					end = len(words)
				}
				candidates = append(candidates, strings.Join(words[start:end], " "))
				break
			}
		}
	}

	cutoff := reference.Add(-staleGrace)
	seen := make(map[int64]bool)
	var dates []time.Time
	for _, cand := range candidates {
		t, ok := parseCandidate(cand, reference)
		if !ok || !t.After(cutoff) {
			continue
		}
		if seen[t.Unix()] {
			continue
		}
		seen[t.Unix()] = true
		dates = append(dates, t)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// parseCandidate tries the strict layouts first, then hands casual phrasings
// ("tomorrow at 2:00 pm") to the natural-language parser with the reference
// time as relative base. Strict layouts go first because the NL parser can
// latch onto a bare time substring inside an explicit timestamp.
func parseCandidate(cand string, reference time.Time) (time.Time, bool) {
	for _, form := range []string{cand, normalizeCandidate(cand)} {
		for _, fl := range strictLayouts {
			t, err := time.ParseInLocation(fl.layout, form, reference.Location())
			if err != nil {
				continue
			}
			if !fl.hasYear {
				t = time.Date(reference.Year(), t.Month(), t.Day(),
					t.Hour(), t.Minute(), 0, 0, reference.Location())
				// Prefer future: a year-less date that already passed
				// refers to next year.
				if t.Before(reference.Add(-staleGrace)) {
					t = t.AddDate(1, 0, 0)
				}
			}
			return t, true
		}
	}

	if r, err := nlParser.Parse(cand, reference); err == nil && r != nil {
		return r.Time, true
	}
	return time.Time{}, false
}

// normalizeCandidate rewrites a lowercased phrase into a form the fallback
// layouts can match: ordinals and commas removed, month and weekday tokens
// capitalized, an uppercase T restored in ISO timestamps.
func normalizeCandidate(s string) string {
	s = strings.ToLower(s)
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, ",", "")

	if m := isoTimestamp.FindStringSubmatch(s); m != nil {
		return m[1] + "T" + m[2]
	}

	words := strings.Fields(s)
	for i, w := range words {
		if isCalendarToken(w) {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

var calendarTokens = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func isCalendarToken(w string) bool {
	return calendarTokens[w]
}
