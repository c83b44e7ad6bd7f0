// Package types defines core data structures for jobtrail.
package types

import "time"

// RawEmail is an immutable email as delivered by the mail source.
type RawEmail struct {
	MessageID  string    `json:"message_id"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	Body       string    `json:"body"`
	Snippet    string    `json:"snippet,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// ParsedEmail is the heuristic view of a RawEmail: extracted company, role
// and interview dates. Produced once per email and never mutated.
type ParsedEmail struct {
	MessageID      string      `json:"message_id"`
	Subject        string      `json:"subject"`
	From           string      `json:"from"`
	Body           string      `json:"body"`
	Snippet        string      `json:"snippet,omitempty"`
	Company        string      `json:"company,omitempty"`
	Role           string      `json:"role,omitempty"`
	InterviewDates []time.Time `json:"interview_dates,omitempty"`
}

// Category is the classification category of an email.
type Category string

const (
	CategoryInterview   Category = "job_interview"
	CategoryApplication Category = "job_application"
	CategoryPromotional Category = "promotional"
	CategoryIrrelevant  Category = "irrelevant"
)

// ValidCategories is the set of allowed classification categories.
var ValidCategories = []Category{
	CategoryInterview, CategoryApplication, CategoryPromotional, CategoryIrrelevant,
}

// IsValidCategory checks if a category string is valid.
func IsValidCategory(c Category) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Classification is the result of classifying a single email, from either
// the AI path or the rule-based fallback.
type Classification struct {
	Category           Category `json:"category"`
	Confidence         float64  `json:"confidence"`
	Reasoning          string   `json:"reasoning"`
	Company            string   `json:"company,omitempty"`
	Role               string   `json:"role,omitempty"`
	InterviewScheduled bool     `json:"interview_scheduled"`
	StatusSuggestion   Status   `json:"status_suggestion"`
}

// Status is an application lifecycle status.
type Status string

// Status constants for the application lifecycle.
const (
	StatusApplied            Status = "applied"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewed        Status = "interviewed"
	StatusRejected           Status = "rejected"
	StatusOffer              Status = "offer"
	StatusAccepted           Status = "accepted"
)

// ValidStatuses is the set of allowed status values, in recommended
// progression order.
var ValidStatuses = []Status{
	StatusApplied, StatusInterviewScheduled, StatusInterviewed,
	StatusRejected, StatusOffer, StatusAccepted,
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Stage is a board stage, a coarser view projection of Status.
type Stage string

// Board stages in column order.
const (
	StageBacklog   Stage = "backlog"
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageFinal     Stage = "final"
	StageClosed    Stage = "closed"
)

// BoardStages is the set of board columns in display order.
var BoardStages = []Stage{
	StageBacklog, StageApplied, StageScreening, StageInterview, StageFinal, StageClosed,
}

// IsValidStage checks if a stage string is valid.
func IsValidStage(s Stage) bool {
	for _, v := range BoardStages {
		if v == s {
			return true
		}
	}
	return false
}

// StageForStatus maps a status to its board stage. board_stage is a
// deterministic projection of status, never independently authoritative.
func StageForStatus(s Status) Stage {
	switch s {
	case StatusApplied:
		return StageApplied
	case StatusInterviewScheduled, StatusInterviewed:
		return StageInterview
	case StatusOffer:
		return StageFinal
	case StatusRejected, StatusAccepted:
		return StageClosed
	default:
		return StageApplied
	}
}

// Source constants for how a record entered the tracker.
const (
	SourceGmail  = "gmail"
	SourceManual = "manual"
	SourceDemo   = "demo"
)

// Priority constants.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriorities is the set of allowed priority values.
var ValidPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// ApplicationRecord is a persistent job application entry.
type ApplicationRecord struct {
	ID               int64  `json:"id"`
	MsgID            string `json:"msg_id,omitempty"`
	Company          string `json:"company"`
	Role             string `json:"role,omitempty"`
	Source           string `json:"source"`
	Status           Status `json:"status"`
	DateApplied      string `json:"date_applied,omitempty"`
	InterviewDate    string `json:"interview_date,omitempty"`
	InterviewRound   string `json:"interview_round,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Snippet          string `json:"snippet,omitempty"`
	EmailSubject     string `json:"email_subject,omitempty"`
	EmailFrom        string `json:"email_from,omitempty"`
	BoardStage       Stage  `json:"board_stage"`
	Priority         string `json:"priority"`
	StageEnteredDate string `json:"stage_entered_date,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// StageTransition records a move between board stages.
type StageTransition struct {
	ID             int64  `json:"id"`
	ApplicationID  int64  `json:"application_id"`
	FromStage      Stage  `json:"from_stage,omitempty"`
	ToStage        Stage  `json:"to_stage"`
	TransitionDate string `json:"transition_date"`
	Notes          string `json:"notes,omitempty"`
	Automated      bool   `json:"automated"`
}

// Note is a free-text note attached to an application.
type Note struct {
	ID            int64  `json:"id"`
	ApplicationID int64  `json:"application_id"`
	NoteType      string `json:"note_type"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
}

// ListFilter narrows a store listing.
type ListFilter struct {
	Statuses []Status
	Stage    Stage
	Company  string
	Source   string
	Limit    int
}

// IngestSummary holds the result of one batch ingestion run.
type IngestSummary struct {
	Fetched           int `json:"fetched"`
	Processed         int `json:"processed"`
	SkippedPromo      int `json:"skipped_promotional"`
	SkippedIrrelevant int `json:"skipped_irrelevant"`
	Failed            int `json:"failed"`
}
