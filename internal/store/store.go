// Package store provides SQLite persistence for application records, their
// stage history and notes.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail/internal/types"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for jobtrail operations.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) a jobtrail database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Now returns the current time as an ISO 8601 string.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DiscoverDB finds the jobtrail database by walking up from cwd.
// Returns the path to .jobtrail/jobs.db or empty string if not found.
func DiscoverDB() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".jobtrail", "jobs.db")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// FindProjectRoot walks up from cwd looking for a .git directory.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

const appColumns = `id, msg_id, company, role, source, status, date_applied,
	interview_date, interview_round, notes, snippet, email_subject, email_from,
	board_stage, priority, stage_entered_date, created_at, updated_at`

// Upsert inserts a new application record or updates the existing one with
// the same msg_id. Records without a msg_id (manual entries) always insert.
// Stage changes are written to the transition history, flagged automated
// when the record came from email ingestion.
func (d *DB) Upsert(rec *types.ApplicationRecord) (id int64, created bool, err error) {
	now := Now()
	rec.BoardStage = types.StageForStatus(rec.Status)
	if rec.Priority == "" {
		rec.Priority = types.PriorityMedium
	}

	var existing *types.ApplicationRecord
	if rec.MsgID != "" {
		existing, err = d.FindByMsgID(rec.MsgID)
		if err != nil {
			return 0, false, err
		}
	}

	if existing != nil {
		if rec.StageEnteredDate == "" {
			rec.StageEnteredDate = existing.StageEnteredDate
		}
		if rec.BoardStage != existing.BoardStage {
			rec.StageEnteredDate = now
		}
		_, err = d.conn.Exec(`
			UPDATE applications SET
				company = ?, role = ?, source = ?, status = ?, date_applied = ?,
				interview_date = ?, interview_round = ?, notes = ?, snippet = ?,
				email_subject = ?, email_from = ?, board_stage = ?, priority = ?,
				stage_entered_date = ?, updated_at = ?
			WHERE id = ?`,
			rec.Company, nullStr(rec.Role), rec.Source, rec.Status, nullStr(rec.DateApplied),
			nullStr(rec.InterviewDate), nullStr(rec.InterviewRound), nullStr(rec.Notes), nullStr(rec.Snippet),
			nullStr(rec.EmailSubject), nullStr(rec.EmailFrom), rec.BoardStage, rec.Priority,
			nullStr(rec.StageEnteredDate), now, existing.ID,
		)
		if err != nil {
			return 0, false, err
		}
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.UpdatedAt = now
		if rec.BoardStage != existing.BoardStage {
			err = d.recordTransition(existing.ID, existing.BoardStage, rec.BoardStage, "", rec.Source == types.SourceGmail)
		}
		return existing.ID, false, err
	}

	rec.CreatedAt = now
	if rec.StageEnteredDate == "" {
		rec.StageEnteredDate = now
	}
	res, err := d.conn.Exec(`
		INSERT INTO applications
			(msg_id, company, role, source, status, date_applied, interview_date,
			 interview_round, notes, snippet, email_subject, email_from,
			 board_stage, priority, stage_entered_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullStr(rec.MsgID), rec.Company, nullStr(rec.Role), rec.Source, rec.Status,
		nullStr(rec.DateApplied), nullStr(rec.InterviewDate), nullStr(rec.InterviewRound),
		nullStr(rec.Notes), nullStr(rec.Snippet), nullStr(rec.EmailSubject), nullStr(rec.EmailFrom),
		rec.BoardStage, rec.Priority, rec.StageEnteredDate, now,
	)
	if err != nil {
		return 0, false, err
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	err = d.recordTransition(rec.ID, "", rec.BoardStage, "", rec.Source == types.SourceGmail)
	return rec.ID, true, err
}

// FindByMsgID returns the application with the given message id, or nil.
func (d *DB) FindByMsgID(msgID string) (*types.ApplicationRecord, error) {
	row := d.conn.QueryRow(
		`SELECT `+appColumns+` FROM applications WHERE msg_id = ?`, msgID)
	rec, err := scanApp(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// Get returns an application by id.
func (d *DB) Get(id int64) (*types.ApplicationRecord, error) {
	row := d.conn.QueryRow(
		`SELECT `+appColumns+` FROM applications WHERE id = ?`, id)
	rec, err := scanApp(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("application %d not found", id)
	}
	return rec, err
}

// List returns applications matching the filter, newest first.
func (d *DB) List(filter types.ListFilter) ([]*types.ApplicationRecord, error) {
	query := `SELECT ` + appColumns + ` FROM applications`

	var conditions []string
	var args []any

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Stage != "" {
		conditions = append(conditions, "board_stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.Company != "" {
		conditions = append(conditions, "company LIKE ?")
		args = append(args, "%"+filter.Company+"%")
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApps(rows)
}

// UpdateStatus sets a new status (and its derived board stage) on an
// application, recording a stage transition when the stage changes.
func (d *DB) UpdateStatus(id int64, status types.Status) error {
	existing, err := d.Get(id)
	if err != nil {
		return err
	}

	now := Now()
	stage := types.StageForStatus(status)
	stageEntered := existing.StageEnteredDate
	if stage != existing.BoardStage {
		stageEntered = now
	}

	_, err = d.conn.Exec(`
		UPDATE applications
		SET status = ?, board_stage = ?, stage_entered_date = ?, updated_at = ?
		WHERE id = ?`,
		status, stage, nullStr(stageEntered), now, id)
	if err != nil {
		return err
	}
	if stage != existing.BoardStage {
		return d.recordTransition(id, existing.BoardStage, stage, "", false)
	}
	return nil
}

// MoveStage moves an application to a board stage directly (a view-level
// override; status is left alone).
func (d *DB) MoveStage(id int64, stage types.Stage, notes string, automated bool) error {
	existing, err := d.Get(id)
	if err != nil {
		return err
	}
	if existing.BoardStage == stage {
		return nil
	}

	now := Now()
	_, err = d.conn.Exec(`
		UPDATE applications
		SET board_stage = ?, stage_entered_date = ?, updated_at = ?
		WHERE id = ?`,
		stage, now, now, id)
	if err != nil {
		return err
	}
	return d.recordTransition(id, existing.BoardStage, stage, notes, automated)
}

// Delete removes an application together with its notes and stage history.
func (d *DB) Delete(id int64) error {
	if _, err := d.Get(id); err != nil {
		return err
	}
	if _, err := d.conn.Exec("DELETE FROM application_notes WHERE application_id = ?", id); err != nil {
		return err
	}
	if _, err := d.conn.Exec("DELETE FROM stage_transitions WHERE application_id = ?", id); err != nil {
		return err
	}
	_, err := d.conn.Exec("DELETE FROM applications WHERE id = ?", id)
	return err
}

// AddNote attaches a free-text note to an application.
func (d *DB) AddNote(appID int64, noteType, content string) (int64, error) {
	if noteType == "" {
		noteType = "general"
	}
	res, err := d.conn.Exec(`
		INSERT INTO application_notes (application_id, note_type, content, created_at)
		VALUES (?, ?, ?, ?)`,
		appID, noteType, content, Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListNotes returns an application's notes, oldest first.
func (d *DB) ListNotes(appID int64) ([]*types.Note, error) {
	rows, err := d.conn.Query(`
		SELECT id, application_id, note_type, content, created_at
		FROM application_notes
		WHERE application_id = ?
		ORDER BY created_at ASC`, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*types.Note
	for rows.Next() {
		n := &types.Note{}
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.NoteType, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Transitions returns an application's stage history, oldest first.
func (d *DB) Transitions(appID int64) ([]*types.StageTransition, error) {
	rows, err := d.conn.Query(`
		SELECT id, application_id, from_stage, to_stage, transition_date, notes, automated
		FROM stage_transitions
		WHERE application_id = ?
		ORDER BY transition_date ASC, id ASC`, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []*types.StageTransition
	for rows.Next() {
		t := &types.StageTransition{}
		var from, notes sql.NullString
		var automated int
		if err := rows.Scan(&t.ID, &t.ApplicationID, &from, &t.ToStage, &t.TransitionDate, &notes, &automated); err != nil {
			return nil, err
		}
		t.FromStage = types.Stage(from.String)
		t.Notes = notes.String
		t.Automated = automated == 1
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

// UpcomingInterviews returns applications with an interview date within the
// next daysAhead days, soonest first.
func (d *DB) UpcomingInterviews(daysAhead int) ([]*types.ApplicationRecord, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, daysAhead).Format(time.RFC3339)

	rows, err := d.conn.Query(`
		SELECT `+appColumns+`
		FROM applications
		WHERE interview_date IS NOT NULL
		  AND interview_date >= ?
		  AND interview_date <= ?
		ORDER BY interview_date ASC`,
		now.Format(time.RFC3339), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApps(rows)
}

// CountByStatus returns application counts grouped by status.
func (d *DB) CountByStatus() (map[string]int, error) {
	return d.countBy("status")
}

// CountByStage returns application counts grouped by board stage.
func (d *DB) CountByStage() (map[string]int, error) {
	return d.countBy("board_stage")
}

// CountBySource returns application counts grouped by source.
func (d *DB) CountBySource() (map[string]int, error) {
	return d.countBy("source")
}

func (d *DB) countBy(column string) (map[string]int, error) {
	rows, err := d.conn.Query("SELECT " + column + ", COUNT(*) FROM applications GROUP BY " + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// Count returns the total number of applications.
func (d *DB) Count() int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM applications").Scan(&n)
	return n
}

func (d *DB) recordTransition(appID int64, from, to types.Stage, notes string, automated bool) error {
	auto := 0
	if automated {
		auto = 1
	}
	_, err := d.conn.Exec(`
		INSERT INTO stage_transitions (application_id, from_stage, to_stage, transition_date, notes, automated)
		VALUES (?, ?, ?, ?, ?, ?)`,
		appID, nullStr(string(from)), to, Now(), nullStr(notes), auto)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApp(row rowScanner) (*types.ApplicationRecord, error) {
	rec := &types.ApplicationRecord{}
	var msgID, role, dateApplied, interviewDate, interviewRound sql.NullString
	var notes, snippet, emailSubject, emailFrom, stageEntered, updatedAt sql.NullString
	err := row.Scan(
		&rec.ID, &msgID, &rec.Company, &role, &rec.Source, &rec.Status, &dateApplied,
		&interviewDate, &interviewRound, &notes, &snippet, &emailSubject, &emailFrom,
		&rec.BoardStage, &rec.Priority, &stageEntered, &rec.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.MsgID = msgID.String
	rec.Role = role.String
	rec.DateApplied = dateApplied.String
	rec.InterviewDate = interviewDate.String
	rec.InterviewRound = interviewRound.String
	rec.Notes = notes.String
	rec.Snippet = snippet.String
	rec.EmailSubject = emailSubject.String
	rec.EmailFrom = emailFrom.String
	rec.StageEnteredDate = stageEntered.String
	rec.UpdatedAt = updatedAt.String
	return rec, nil
}

func scanApps(rows *sql.Rows) ([]*types.ApplicationRecord, error) {
	var result []*types.ApplicationRecord
	for rows.Next() {
		rec, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
