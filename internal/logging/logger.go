package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CaseLog is one finished game as stored in the journal.
type CaseLog struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Verdict   string    `json:"verdict"`
	Metadata  string    `json:"metadata"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

type VisitLog struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Room      string    `json:"room"`
	Clue      string    `json:"clue"`
	Status    string    `json:"status"`
}

type CaseMetadata struct {
	Locale   string         `json:"locale"`
	Clues    []string       `json:"clues"`
	Tallies  map[string]int `json:"tallies"`
	Leaders  []string       `json:"leaders"`
	Visits   int            `json:"visits"`
	Duration time.Duration  `json:"duration_ns"`
	Ending   string         `json:"ending"`
}

// Journal records played cases in sqlite so they can be reviewed later.
// Nothing is ever read back into a running game.
type Journal struct {
	db *sql.DB
}

func NewJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

func (j *Journal) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		title TEXT NOT NULL,
		verdict TEXT NOT NULL,
		metadata TEXT NOT NULL,
		rating INTEGER,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		room TEXT NOT NULL,
		clue TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_timestamp ON cases(timestamp);
	CREATE INDEX IF NOT EXISTS idx_visits_session ON visits(session_id);
	`

	_, err := j.db.Exec(schema)
	return err
}

func (j *Journal) LogVisit(sessionID, room, clue, status string) error {
	_, err := j.db.Exec(`
		INSERT INTO visits (session_id, room, clue, status)
		VALUES (?, ?, ?, ?)
	`, sessionID, room, clue, status)
	return err
}

func (j *Journal) LogCase(sessionID, title, verdict string, metadata CaseMetadata) error {
	metadataJson, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = j.db.Exec(`
		INSERT INTO cases (session_id, title, verdict, metadata)
		VALUES (?, ?, ?, ?)
	`, sessionID, title, verdict, string(metadataJson))

	return err
}

func (j *Journal) GetRecentCases(limit int) ([]CaseLog, error) {
	rows, err := j.db.Query(`
		SELECT id, session_id, timestamp, title, verdict, metadata, rating, notes
		FROM cases
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []CaseLog
	for rows.Next() {
		var c CaseLog
		err := rows.Scan(&c.ID, &c.SessionID, &c.Timestamp, &c.Title,
			&c.Verdict, &c.Metadata, &c.Rating, &c.Notes)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

func (j *Journal) GetVisits(sessionID string) ([]VisitLog, error) {
	rows, err := j.db.Query(`
		SELECT id, session_id, timestamp, room, clue, status
		FROM visits
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []VisitLog
	for rows.Next() {
		var v VisitLog
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Timestamp, &v.Room, &v.Clue, &v.Status); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

func (j *Journal) RateCase(id int, rating int, notes string) error {
	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	res, err := j.db.Exec(`
		UPDATE cases
		SET rating = ?, notes = ?
		WHERE id = ?
	`, rating, notesPtr, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no case with id %d", id)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
