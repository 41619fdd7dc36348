package chatdesk

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var _ LeadStore = &SQLiteLeadStore{}

// SQLiteLeadStore persists leads in a local SQLite database so a submission
// survives a process restart even if the notification email never went out.
type SQLiteLeadStore struct {
	db *sql.DB
}

// NewSQLiteLeadStore opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteLeadStore(dbPath string) (*SQLiteLeadStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteLeadStore{db: db}
	if err := store.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func (s *SQLiteLeadStore) initDB() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT,
		issue TEXT,
		duration TEXT,
		pain_level INTEGER,
		preferred_week TEXT,
		preferred_time TEXT,
		message TEXT,
		created_at TIMESTAMP NOT NULL
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteLeadStore) Close() error {
	return s.db.Close()
}

// SaveLead inserts an accepted lead.
func (s *SQLiteLeadStore) SaveLead(ctx context.Context, lead *Lead) error {
	query := `
	INSERT INTO leads (id, customer_id, name, phone, email, issue, duration,
		pain_level, preferred_week, preferred_time, message, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var painLevel sql.NullInt64
	if lead.PainLevel != nil {
		painLevel = sql.NullInt64{Int64: int64(*lead.PainLevel), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		lead.ID, lead.CustomerID, lead.Name, lead.Phone,
		nullable(lead.Email), nullable(lead.Issue), nullable(lead.Duration),
		painLevel, nullable(lead.PreferredWeek), nullable(lead.PreferredTime),
		nullable(lead.Message), lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// ListLeads returns accepted leads, newest first.
func (s *SQLiteLeadStore) ListLeads(ctx context.Context, limit, offset int) ([]Lead, error) {
	query := `
	SELECT id, customer_id, name, phone, email, issue, duration,
		pain_level, preferred_week, preferred_time, message, created_at
	FROM leads
	ORDER BY created_at DESC
	LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var lead Lead
		var email, issue, duration, prefWeek, prefTime, message sql.NullString
		var painLevel sql.NullInt64
		if err := rows.Scan(&lead.ID, &lead.CustomerID, &lead.Name, &lead.Phone,
			&email, &issue, &duration, &painLevel, &prefWeek, &prefTime,
			&message, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		lead.Email = email.String
		lead.Issue = issue.String
		lead.Duration = duration.String
		lead.PreferredWeek = prefWeek.String
		lead.PreferredTime = prefTime.String
		lead.Message = message.String
		if painLevel.Valid {
			level := int(painLevel.Int64)
			lead.PainLevel = &level
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return leads, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
