// Package pipeline wires extraction, classification and the store into the
// email-to-record ingestion flow.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrail/jobtrail/internal/classify"
	"github.com/jobtrail/jobtrail/internal/extract"
	"github.com/jobtrail/jobtrail/internal/types"
)

// DefaultQuery targets interview-related subject lines at the mail source.
const DefaultQuery = `subject:(interview OR "phone screen" OR "interview scheduled" OR "technical interview" OR "final interview" OR "onsite interview" OR "video interview" OR "zoom interview" OR "interview invitation" OR "interview confirmed")`

// DefaultMaxResults bounds one ingestion batch.
const DefaultMaxResults = 50

// MailSource supplies candidate emails. OAuth, token storage and the query
// language are the implementation's concern.
type MailSource interface {
	FetchCandidateEmails(ctx context.Context, query string, maxResults int64) ([]types.RawEmail, error)
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	Upsert(rec *types.ApplicationRecord) (id int64, created bool, err error)
}

// Outcome says what happened to one email.
type Outcome int

const (
	// OutcomeRecorded means an application record was created or updated.
	OutcomeRecorded Outcome = iota
	// OutcomeSkippedPromotional means the email was discarded as promotional.
	OutcomeSkippedPromotional
	// OutcomeSkippedIrrelevant means the email was discarded as non-job noise.
	OutcomeSkippedIrrelevant
)

// Pipeline processes emails one at a time: extract, classify, reconcile,
// upsert. Failures are isolated per email.
type Pipeline struct {
	classifier *classify.Classifier
	store      Store
	log        zerolog.Logger
	now        func() time.Time
}

// New builds a pipeline. The classifier's lifecycle is owned by the caller.
func New(classifier *classify.Classifier, store Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// ParseEmail runs the pure extraction heuristics over one email.
func ParseEmail(email types.RawEmail, reference time.Time) types.ParsedEmail {
	return types.ParsedEmail{
		MessageID:      email.MessageID,
		Subject:        email.Subject,
		From:           email.From,
		Body:           email.Body,
		Snippet:        email.Snippet,
		Company:        extract.ExtractCompany(email.From, email.Subject, email.Body),
		Role:           extract.ExtractJobRole(email.Subject, email.Body),
		InterviewDates: extract.ExtractDates(email.Subject+" "+email.Body, reference),
	}
}

// Keyword sets for the status override cascade.
var (
	schedulingKeywords = []string{
		"interview scheduled", "interview confirmed", "interview invitation",
		"please join", "zoom link", "meeting link", "interview tomorrow",
		"interview on", "interview at", "confirmed interview",
	}
	offerKeywords     = []string{"congratulations", "offer", "selected", "hired"}
	rejectionKeywords = []string{"rejected", "unfortunately", "not selected", "not moving forward"}
	screeningKeywords = []string{"screening", "phone screen", "initial call"}
)

// ResolveStatus applies the status override cascade to the classifier's
// suggestion. The four checks run unconditionally in fixed order —
// scheduling, offer, rejection, screening — and a later match overwrites an
// earlier one. The ordering is deliberate and load-bearing: screening
// language wins over rejection language when both appear.
func ResolveStatus(parsed types.ParsedEmail, cls types.Classification) types.Status {
	status := cls.StatusSuggestion
	if !types.IsValidStatus(status) {
		status = types.StatusApplied
	}

	content := strings.ToLower(parsed.Subject + " " + parsed.Body)

	if hasAny(content, schedulingKeywords) && len(parsed.InterviewDates) > 0 {
		status = types.StatusInterviewScheduled
	}
	if hasAny(content, offerKeywords) {
		status = types.StatusOffer
	}
	if hasAny(content, rejectionKeywords) {
		status = types.StatusRejected
	}
	if hasAny(content, screeningKeywords) {
		status = types.StatusInterviewScheduled
	}
	return status
}

// Process runs one email through the full pipeline. Promotional and
// irrelevant emails are discarded without touching the store.
func (p *Pipeline) Process(ctx context.Context, email types.RawEmail) (Outcome, int64, error) {
	parsed := ParseEmail(email, p.now())
	result := p.classifier.Classify(ctx, email)
	cls := result.Classification

	switch cls.Category {
	case types.CategoryPromotional:
		p.log.Debug().Str("subject", email.Subject).Msg("skipping promotional email")
		return OutcomeSkippedPromotional, 0, nil
	case types.CategoryIrrelevant:
		p.log.Debug().Str("subject", email.Subject).Msg("skipping non-job-related email")
		return OutcomeSkippedIrrelevant, 0, nil
	}

	// AI-extracted entities win over heuristics when present.
	company := cls.Company
	if company == "" {
		company = parsed.Company
	}
	role := cls.Role
	if role == "" {
		role = parsed.Role
	}

	// Cross-check: the "company" may be a job-board aggregator mailing from
	// its own domain. Only demote when the spam score agrees.
	if classify.IsJobBoardSpam(company, email.From) && classify.IsPromotionalEmail(email) {
		p.log.Debug().Str("subject", email.Subject).Str("company", company).
			Msg("skipping job-board promotional email")
		return OutcomeSkippedPromotional, 0, nil
	}

	status := ResolveStatus(parsed, cls)

	rec := &types.ApplicationRecord{
		MsgID:        parsed.MessageID,
		Company:      company,
		Role:         role,
		Source:       types.SourceGmail,
		Status:       status,
		Snippet:      parsed.Snippet,
		EmailSubject: parsed.Subject,
		EmailFrom:    parsed.From,
	}
	if !email.ReceivedAt.IsZero() {
		rec.DateApplied = email.ReceivedAt.Format("2006-01-02")
	}
	if len(parsed.InterviewDates) > 0 && (cls.InterviewScheduled || status == types.StatusInterviewScheduled) {
		// UTC so the store's lexical timestamp comparisons stay correct.
		rec.InterviewDate = parsed.InterviewDates[0].UTC().Format(time.RFC3339)
		rec.InterviewRound = "unknown"
	}

	id, created, err := p.store.Upsert(rec)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert application: %w", err)
	}

	p.log.Info().
		Int64("id", id).
		Bool("created", created).
		Str("source", string(result.Source)).
		Str("category", string(cls.Category)).
		Str("company", company).
		Str("status", string(status)).
		Msg("recorded application")
	return OutcomeRecorded, id, nil
}

// Run fetches a bounded batch from the mail source and processes each email
// independently. An error on one email is logged and counted, and the batch
// continues.
func (p *Pipeline) Run(ctx context.Context, source MailSource, query string, maxResults int64) (*types.IngestSummary, error) {
	if query == "" {
		query = DefaultQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	emails, err := source.FetchCandidateEmails(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate emails: %w", err)
	}

	summary := &types.IngestSummary{Fetched: len(emails)}
	for _, email := range emails {
		outcome, _, err := p.Process(ctx, email)
		if err != nil {
			summary.Failed++
			p.log.Error().Err(err).
				Str("message_id", email.MessageID).
				Str("subject", email.Subject).
				Msg("processing email failed, continuing batch")
			continue
		}
		switch outcome {
		case OutcomeRecorded:
			summary.Processed++
		case OutcomeSkippedPromotional:
			summary.SkippedPromo++
		case OutcomeSkippedIrrelevant:
			summary.SkippedIrrelevant++
		}
	}
	return summary, nil
}

func hasAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
