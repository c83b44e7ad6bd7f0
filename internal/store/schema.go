package store

// Schema is the DDL for the jobtrail database.
const Schema = `
CREATE TABLE IF NOT EXISTS applications (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    msg_id              TEXT UNIQUE,
    company             TEXT,
    role                TEXT,
    source              TEXT NOT NULL DEFAULT 'manual',
    status              TEXT NOT NULL DEFAULT 'applied',
    date_applied        TEXT,
    interview_date      TEXT,
    interview_round     TEXT,
    notes               TEXT,
    snippet             TEXT,
    email_subject       TEXT,
    email_from          TEXT,
    board_stage         TEXT NOT NULL DEFAULT 'applied',
    priority            TEXT NOT NULL DEFAULT 'medium',
    stage_entered_date  TEXT,
    created_at          TEXT NOT NULL,
    updated_at          TEXT
);

CREATE TABLE IF NOT EXISTS stage_transitions (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    application_id  INTEGER NOT NULL,
    from_stage      TEXT,
    to_stage        TEXT NOT NULL,
    transition_date TEXT NOT NULL,
    notes           TEXT,
    automated       INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (application_id) REFERENCES applications(id)
);

CREATE TABLE IF NOT EXISTS application_notes (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    application_id  INTEGER NOT NULL,
    note_type       TEXT NOT NULL DEFAULT 'general',
    content         TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    FOREIGN KEY (application_id) REFERENCES applications(id)
);

CREATE INDEX IF NOT EXISTS idx_apps_msg_id ON applications(msg_id);
CREATE INDEX IF NOT EXISTS idx_apps_company ON applications(company);
CREATE INDEX IF NOT EXISTS idx_apps_status ON applications(status);
CREATE INDEX IF NOT EXISTS idx_apps_interview_date ON applications(interview_date);
CREATE INDEX IF NOT EXISTS idx_apps_board_stage ON applications(board_stage);
CREATE INDEX IF NOT EXISTS idx_apps_priority ON applications(priority);
CREATE INDEX IF NOT EXISTS idx_transitions_app_id ON stage_transitions(application_id);
CREATE INDEX IF NOT EXISTS idx_notes_app_id ON application_notes(application_id);
`
