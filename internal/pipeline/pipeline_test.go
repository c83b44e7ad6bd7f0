package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrail/jobtrail/internal/classify"
	"github.com/jobtrail/jobtrail/internal/types"
)

type fakeStore struct {
	records []*types.ApplicationRecord
	failFor string
}

func (f *fakeStore) Upsert(rec *types.ApplicationRecord) (int64, bool, error) {
	if f.failFor != "" && rec.MsgID == f.failFor {
		return 0, false, errors.New("disk full")
	}
	f.records = append(f.records, rec)
	return int64(len(f.records)), true, nil
}

type fakeSource struct {
	emails   []types.RawEmail
	gotQuery string
	gotMax   int64
	fetchErr error
}

func (f *fakeSource) FetchCandidateEmails(ctx context.Context, query string, maxResults int64) ([]types.RawEmail, error) {
	f.gotQuery = query
	f.gotMax = maxResults
	return f.emails, f.fetchErr
}

func newTestPipeline(store Store) *Pipeline {
	p := New(classify.NewClassifier(nil, zerolog.Nop()), store, zerolog.Nop())
	p.now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestProcessRecordsInterviewEmail(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	email := types.RawEmail{
		MessageID:  "msg-1",
		Subject:    "Interview scheduled",
		From:       "recruiter@techcorp.io",
		Body:       "Your interview scheduled for 2024-03-05T14:00:00. Zoom link: https://zoom.us/j/1",
		ReceivedAt: time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC),
	}

	outcome, _, err := p.Process(context.Background(), email)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if outcome != OutcomeRecorded {
		t.Fatalf("outcome: got %v, want recorded", outcome)
	}
	if len(store.records) != 1 {
		t.Fatalf("got %d records, want 1", len(store.records))
	}

	rec := store.records[0]
	if rec.MsgID != "msg-1" {
		t.Errorf("msg id: got %q", rec.MsgID)
	}
	if rec.Company != "Techcorp" {
		t.Errorf("company: got %q, want Techcorp", rec.Company)
	}
	if rec.Source != types.SourceGmail {
		t.Errorf("source: got %s", rec.Source)
	}
	if rec.Status != types.StatusInterviewScheduled {
		t.Errorf("status: got %s, want %s", rec.Status, types.StatusInterviewScheduled)
	}
	wantDate := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if rec.InterviewDate != wantDate {
		t.Errorf("interview date: got %q, want %q", rec.InterviewDate, wantDate)
	}
	if rec.InterviewRound != "unknown" {
		t.Errorf("round: got %q, want unknown", rec.InterviewRound)
	}
	if rec.DateApplied != "2024-01-09" {
		t.Errorf("date applied: got %q", rec.DateApplied)
	}
}

func TestProcessStoresInterviewDateInUTC(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)
	ist := time.FixedZone("IST", 5*3600+30*60)
	p.now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, ist) }

	// The extracted timestamp resolves in the local offset; the stored value
	// must still be UTC so lexical range queries compare correctly.
	_, _, err := p.Process(context.Background(), types.RawEmail{
		MessageID: "msg-tz",
		Subject:   "Interview scheduled",
		From:      "recruiter@techcorp.io",
		Body:      "Your interview scheduled for 2024-03-05T14:00:00.",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("got %d records, want 1", len(store.records))
	}
	if got, want := store.records[0].InterviewDate, "2024-03-05T08:30:00Z"; got != want {
		t.Errorf("interview date: got %q, want %q", got, want)
	}
}

func TestProcessDiscardsPromotional(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	outcome, _, err := p.Process(context.Background(), types.RawEmail{
		MessageID: "msg-2",
		Subject:   "Job Alert: 1000+ openings",
		From:      "alerts@jobs.example.com",
		Body:      "Unsubscribe anytime.",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if outcome != OutcomeSkippedPromotional {
		t.Errorf("outcome: got %v, want skipped promotional", outcome)
	}
	if len(store.records) != 0 {
		t.Errorf("store touched for promotional email")
	}
}

func TestProcessDiscardsJobBoardSpam(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	// Passes the keyword cascade (no hard promotional keywords) but the
	// extracted "company" is the aggregator itself and the spam score agrees.
	outcome, _, err := p.Process(context.Background(), types.RawEmail{
		MessageID: "msg-3",
		Subject:   "New openings for you",
		From:      "noreply@naukri.com",
		Body:      "Dear candidate, your profile matches our openings. Apply now.",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if outcome != OutcomeSkippedPromotional {
		t.Errorf("outcome: got %v, want skipped promotional", outcome)
	}
	if len(store.records) != 0 {
		t.Errorf("store touched for job board spam")
	}
}

func TestResolveStatusCascade(t *testing.T) {
	dates := []time.Time{time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)}
	tests := []struct {
		name  string
		body  string
		dates []time.Time
		want  types.Status
	}{
		{
			name:  "scheduling keywords with a concrete date",
			body:  "Your interview scheduled for next week.",
			dates: dates,
			want:  types.StatusInterviewScheduled,
		},
		{
			name: "scheduling keywords without a date stay put",
			body: "Your interview scheduled soon, details to follow.",
			want: types.StatusApplied,
		},
		{
			name: "offer language",
			body: "Congratulations, you have been selected.",
			want: types.StatusOffer,
		},
		{
			name: "rejection language",
			body: "Unfortunately we are not moving forward.",
			want: types.StatusRejected,
		},
		{
			name: "screening wins over rejection language",
			body: "Unfortunately the panel is busy; we moved your phone screen.",
			want: types.StatusInterviewScheduled,
		},
		{
			name:  "rejection wins over scheduling",
			body:  "Your interview scheduled earlier is cancelled; you were not selected.",
			dates: dates,
			want:  types.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := types.ParsedEmail{Body: tt.body, InterviewDates: tt.dates}
			cls := types.Classification{StatusSuggestion: types.StatusApplied}
			if got := ResolveStatus(parsed, cls); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveStatusInvalidSuggestion(t *testing.T) {
	parsed := types.ParsedEmail{Body: "We received your application."}
	cls := types.Classification{StatusSuggestion: "ghosted"}
	if got := ResolveStatus(parsed, cls); got != types.StatusApplied {
		t.Errorf("got %s, want %s", got, types.StatusApplied)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	store := &fakeStore{failFor: "msg-bad"}
	p := newTestPipeline(store)

	source := &fakeSource{emails: []types.RawEmail{
		{MessageID: "msg-ok", Subject: "Thank you for applying", From: "hr@acme.com", Body: "We received it."},
		{MessageID: "msg-bad", Subject: "Thank you for applying", From: "hr@globex.com", Body: "We received it."},
		{MessageID: "msg-promo", Subject: "Job alert weekly", From: "news@example.com", Body: "Unsubscribe here."},
	}}

	summary, err := p.Run(context.Background(), source, "", 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if source.gotQuery != DefaultQuery {
		t.Errorf("query: got %q, want default", source.gotQuery)
	}
	if source.gotMax != DefaultMaxResults {
		t.Errorf("max: got %d, want %d", source.gotMax, DefaultMaxResults)
	}
	if summary.Fetched != 3 {
		t.Errorf("fetched: got %d", summary.Fetched)
	}
	if summary.Processed != 1 {
		t.Errorf("processed: got %d, want 1", summary.Processed)
	}
	if summary.Failed != 1 {
		t.Errorf("failed: got %d, want 1", summary.Failed)
	}
	if summary.SkippedPromo != 1 {
		t.Errorf("skipped promo: got %d, want 1", summary.SkippedPromo)
	}
}

func TestRunFetchError(t *testing.T) {
	p := newTestPipeline(&fakeStore{})
	source := &fakeSource{fetchErr: errors.New("token expired")}

	if _, err := p.Run(context.Background(), source, "", 0); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
