package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
)

var _ models.Repository[*models.WatchRecord] = (*WatchHistoryRepository)(nil)

// WatchHistoryRepository implements [models.Repository] for [models.WatchRecord] persistence.
type WatchHistoryRepository struct {
	db *sql.DB
}

// NewWatchHistoryRepository creates a new [WatchHistoryRepository] with the given database connection
func NewWatchHistoryRepository(db *sql.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

const watchColumns = `id, team_code, game_date, game_pk, matchup, kind, media_type, feed_type, media_id, resolved_at`

// Create inserts a record with a generated ID
func (r *WatchHistoryRepository) Create(rec *models.WatchRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	query := `INSERT INTO watch_history (` + watchColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, id, rec.TeamCode, rec.GameDate, rec.GamePk, rec.Matchup, string(rec.Kind),
		string(rec.MediaType), string(rec.FeedType), rec.MediaID, rec.CreatedAt().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert watch record: %w", err)
	}

	rec.SetID(id)
	return nil
}

// Get retrieves a record by ID
func (r *WatchHistoryRepository) Get(id string) (*models.WatchRecord, error) {
	query := `SELECT ` + watchColumns + ` FROM watch_history WHERE id = ?`

	rec, err := scanWatchRecord(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: watch record %s", shared.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query watch record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by ID
func (r *WatchHistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM watch_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watch record: %w", err)
	}
	return affected(result, fmt.Errorf("%w: watch record %s", shared.ErrRecordNotFound, id))
}

// List returns up to limit records, most recent first. A non-positive limit returns everything.
func (r *WatchHistoryRepository) List(limit int) ([]*models.WatchRecord, error) {
	return r.list(`SELECT `+watchColumns+` FROM watch_history ORDER BY resolved_at DESC, rowid DESC`, limit)
}

// ListByTeam is [WatchHistoryRepository.List] restricted to one team code.
func (r *WatchHistoryRepository) ListByTeam(code string, limit int) ([]*models.WatchRecord, error) {
	query := `SELECT ` + watchColumns + ` FROM watch_history WHERE team_code = ? ORDER BY resolved_at DESC, rowid DESC`
	return r.list(query, limit, code)
}

// Clear deletes every record and returns how many were removed.
func (r *WatchHistoryRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM watch_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear watch history: %w", err)
	}
	return result.RowsAffected()
}

func (r *WatchHistoryRepository) list(query string, limit int, args ...any) ([]*models.WatchRecord, error) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	var records []*models.WatchRecord
	for rows.Next() {
		rec, err := scanWatchRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWatchRecord(s scanner) (*models.WatchRecord, error) {
	var (
		rec                   models.WatchRecord
		id, kind, media, feed string
		resolvedAt            time.Time
	)

	err := s.Scan(&id, &rec.TeamCode, &rec.GameDate, &rec.GamePk, &rec.Matchup, &kind, &media, &feed, &rec.MediaID, &resolvedAt)
	if err != nil {
		return nil, err
	}

	rec.SetID(id)
	rec.SetResolvedAt(resolvedAt)
	rec.Kind = models.WatchKind(kind)
	rec.MediaType = models.MediaType(media)
	rec.FeedType = models.FeedType(feed)
	return &rec, nil
}
