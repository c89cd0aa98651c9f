// Package sqlite provides a SQLite-backed outcome ledger.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/ledger/filter"
	"github.com/emberhatch/menagerie/internal/ledger/sqlite/migrations"
	apperrors "github.com/emberhatch/menagerie/internal/platform/errors"
	sqlitemigrate "github.com/emberhatch/menagerie/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists resolved outcomes in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite outcome ledger and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordOutcome inserts one outcome record.
func (s *Store) RecordOutcome(ctx context.Context, outcome ledger.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(outcome.ID)
	if id == "" {
		return fmt.Errorf("outcome id is required")
	}
	switch outcome.Kind {
	case ledger.KindHatch, ledger.KindBattle, ledger.KindFusion:
	default:
		return fmt.Errorf("outcome kind is invalid: %q", outcome.Kind)
	}
	if strings.TrimSpace(outcome.SeedSource) == "" {
		return fmt.Errorf("seed source is required")
	}
	if strings.TrimSpace(outcome.RollMode) == "" {
		return fmt.Errorf("roll mode is required")
	}
	if strings.TrimSpace(outcome.Algo) == "" {
		return fmt.Errorf("rng algo is required")
	}
	payload := outcome.Payload
	if strings.TrimSpace(payload) == "" {
		payload = "{}"
	}
	createdAt := outcome.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO outcomes (
		   id,
		   kind,
		   egg_type,
		   tier,
		   affinity,
		   winner,
		   success,
		   seed,
		   seed_source,
		   roll_mode,
		   algo,
		   payload,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		string(outcome.Kind),
		strings.TrimSpace(outcome.EggType),
		strings.TrimSpace(outcome.Tier),
		strings.TrimSpace(outcome.Affinity),
		strings.TrimSpace(outcome.Winner),
		outcome.Success,
		outcome.Seed,
		strings.TrimSpace(outcome.SeedSource),
		strings.TrimSpace(outcome.RollMode),
		strings.TrimSpace(outcome.Algo),
		payload,
		toMillis(createdAt),
	)
	if err != nil {
		if isOutcomeUniqueViolation(err) {
			return apperrors.WithMetadata(apperrors.CodeAlreadyExists, "outcome already recorded", map[string]string{
				"ID": id,
			})
		}
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// GetOutcome returns one outcome by ID.
func (s *Store) GetOutcome(ctx context.Context, id string) (ledger.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Outcome{}, err
	}
	if s == nil || s.sqlDB == nil {
		return ledger.Outcome{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ledger.Outcome{}, fmt.Errorf("outcome id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, kind, egg_type, tier, affinity, winner, success,
		        seed, seed_source, roll_mode, algo, payload, created_at
		   FROM outcomes
		  WHERE id = ?`,
		id,
	)

	var outcome ledger.Outcome
	var kind string
	var createdAt int64
	err := row.Scan(
		&outcome.ID,
		&kind,
		&outcome.EggType,
		&outcome.Tier,
		&outcome.Affinity,
		&outcome.Winner,
		&outcome.Success,
		&outcome.Seed,
		&outcome.SeedSource,
		&outcome.RollMode,
		&outcome.Algo,
		&outcome.Payload,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Outcome{}, apperrors.WithMetadata(apperrors.CodeNotFound, "outcome not found", map[string]string{
				"ID": id,
			})
		}
		return ledger.Outcome{}, fmt.Errorf("get outcome: %w", err)
	}

	outcome.Kind = ledger.Kind(kind)
	outcome.CreatedAt = fromMillis(createdAt)
	return outcome, nil
}

// ListOutcomes returns one page of outcomes ordered by creation time.
// Ties on created_at break by id so pagination never skips or repeats rows.
func (s *Store) ListOutcomes(ctx context.Context, query ledger.Query) (ledger.Page, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Page{}, err
	}
	if s == nil || s.sqlDB == nil {
		return ledger.Page{}, fmt.Errorf("storage is not configured")
	}
	if query.PageSize <= 0 {
		return ledger.Page{}, fmt.Errorf("page size must be greater than zero")
	}

	cond, err := filter.ParseOutcomeFilter(query.Filter)
	if err != nil {
		return ledger.Page{}, err
	}

	clauses := make([]string, 0, 2)
	params := make([]any, 0, len(cond.Params)+4)
	if cond.Clause != "" {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	if token := strings.TrimSpace(query.PageToken); token != "" {
		afterMillis, afterID, err := decodePageToken(token)
		if err != nil {
			return ledger.Page{}, err
		}
		clauses = append(clauses, "(created_at > ? OR (created_at = ? AND id > ?))")
		params = append(params, afterMillis, afterMillis, afterID)
	}

	stmt := `SELECT id, kind, egg_type, tier, affinity, winner, success,
	        seed, seed_source, roll_mode, algo, payload, created_at
	   FROM outcomes`
	if len(clauses) > 0 {
		stmt += "\n  WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += "\n  ORDER BY created_at ASC, id ASC\n  LIMIT ?"
	params = append(params, query.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, stmt, params...)
	if err != nil {
		return ledger.Page{}, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	page := ledger.Page{
		Outcomes: make([]ledger.Outcome, 0, query.PageSize),
	}
	for rows.Next() {
		var outcome ledger.Outcome
		var kind string
		var createdAt int64
		if err := rows.Scan(
			&outcome.ID,
			&kind,
			&outcome.EggType,
			&outcome.Tier,
			&outcome.Affinity,
			&outcome.Winner,
			&outcome.Success,
			&outcome.Seed,
			&outcome.SeedSource,
			&outcome.RollMode,
			&outcome.Algo,
			&outcome.Payload,
			&createdAt,
		); err != nil {
			return ledger.Page{}, fmt.Errorf("list outcomes: %w", err)
		}
		outcome.Kind = ledger.Kind(kind)
		outcome.CreatedAt = fromMillis(createdAt)
		page.Outcomes = append(page.Outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return ledger.Page{}, fmt.Errorf("list outcomes: %w", err)
	}
	if len(page.Outcomes) > query.PageSize {
		last := page.Outcomes[query.PageSize-1]
		page.NextPageToken = encodePageToken(last.CreatedAt, last.ID)
		page.Outcomes = page.Outcomes[:query.PageSize]
	}

	return page, nil
}

// encodePageToken packs the keyset cursor as "<millis>:<id>".
func encodePageToken(createdAt time.Time, id string) string {
	return strconv.FormatInt(toMillis(createdAt), 10) + ":" + id
}

func decodePageToken(token string) (int64, string, error) {
	millisPart, id, ok := strings.Cut(token, ":")
	if !ok || id == "" {
		return 0, "", apperrors.New(apperrors.CodePageTokenInvalid, "page token is malformed")
	}
	millis, err := strconv.ParseInt(millisPart, 10, 64)
	if err != nil {
		return 0, "", apperrors.Wrap(apperrors.CodePageTokenInvalid, "page token is malformed", err)
	}
	return millis, id, nil
}

func isOutcomeUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "outcomes.id")
}

var _ ledger.Store = (*Store)(nil)
