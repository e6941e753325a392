package video

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS videos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	duration INTEGER NOT NULL CHECK (duration >= 0),
	likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_videos_name ON videos (name);
CREATE INDEX IF NOT EXISTS idx_videos_duration ON videos (duration);

CREATE TABLE IF NOT EXISTS video_likes (
	video_id INTEGER NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	username TEXT NOT NULL,
	PRIMARY KEY (video_id, username)
);
`

const sqliteSelect = `SELECT v.id, v.name, v.duration, v.likes,
	(SELECT json_group_array(l.username) FROM video_likes l WHERE l.video_id = v.id)
	FROM videos v`

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteRepository implements Repository using SQLite
type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex // serialises writers
}

// InitSQLiteSchema creates the tables if they do not exist
func InitSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return nil
}

// NewSQLiteRepository creates a new SQLite-backed Repository. The schema
// must already exist, see InitSQLiteSchema.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// scanSQLiteVideo reads one row produced by sqliteSelect
func scanSQLiteVideo(scan func(dest ...any) error) (*model.Video, error) {
	var video model.Video
	var likedBy string
	if err := scan(&video.ID, &video.Name, &video.Duration, &video.Likes, &likedBy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(likedBy), &video.LikedBy); err != nil {
		return nil, fmt.Errorf("failed to decode liked_by: %w", err)
	}
	video.NormalizeLikedBy()
	return &video, nil
}

func (r *sqliteRepository) queryVideos(ctx context.Context, operation string, query string, args ...any) ([]*model.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleSQLiteError(err, operation)
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanSQLiteVideo(rows.Scan)
		if err != nil {
			return nil, handleSQLiteError(err, "failed to scan video row")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, handleSQLiteError(err, "failed to iterate video rows")
	}

	return videos, nil
}

// FindAll retrieves every video ordered by ID
func (r *sqliteRepository) FindAll(ctx context.Context) ([]*model.Video, error) {
	return r.queryVideos(ctx, "failed to list videos", sqliteSelect+" ORDER BY v.id")
}

// FindByID retrieves a video by its ID
func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	return findSQLiteVideo(ctx, r.db, id)
}

// FindByName retrieves videos whose name equals name
func (r *sqliteRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	return r.queryVideos(ctx, "failed to find videos by name", sqliteSelect+" WHERE v.name = ? ORDER BY v.id", name)
}

// FindByDurationLessThan retrieves videos shorter than duration
func (r *sqliteRepository) FindByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	return r.queryVideos(ctx, "failed to find videos by duration", sqliteSelect+" WHERE v.duration < ? ORDER BY v.id", duration)
}

// Save inserts or overwrites a video together with its likes
func (r *sqliteRepository) Save(ctx context.Context, video *model.Video) (*model.Video, error) {
	stored := video.Clone()
	stored.NormalizeLikedBy()

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if stored.ID == 0 {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO videos (name, duration, likes) VALUES (?, ?, ?)",
				stored.Name, stored.Duration, stored.Likes)
			if err != nil {
				return handleSQLiteError(err, "failed to create video")
			}
			id, err := res.LastInsertId()
			if err != nil {
				return handleSQLiteError(err, "failed to read video id")
			}
			stored.ID = id
		} else {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO videos (id, name, duration, likes) VALUES (?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET name = excluded.name, duration = excluded.duration, likes = excluded.likes`,
				stored.ID, stored.Name, stored.Duration, stored.Likes)
			if err != nil {
				return handleSQLiteError(err, "failed to save video")
			}
		}
		return replaceSQLiteLikes(ctx, tx, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// CreateBatch inserts all videos in a single transaction
func (r *sqliteRepository) CreateBatch(ctx context.Context, videos []*model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, video := range videos {
			v := video.Clone()
			v.NormalizeLikedBy()
			res, err := tx.ExecContext(ctx,
				"INSERT INTO videos (name, duration, likes) VALUES (?, ?, ?)",
				v.Name, v.Duration, v.Likes)
			if err != nil {
				return handleSQLiteError(err, "failed to create videos in batch")
			}
			if v.ID, err = res.LastInsertId(); err != nil {
				return handleSQLiteError(err, "failed to read video id")
			}
			if err := replaceSQLiteLikes(ctx, tx, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies mutate inside a write transaction
func (r *sqliteRepository) Update(ctx context.Context, id int64, mutate MutateFunc) (*model.Video, error) {
	var video *model.Video
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		video, err = findSQLiteVideo(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := mutate(video); err != nil {
			return err
		}
		video.ID = id
		video.NormalizeLikedBy()

		_, err = tx.ExecContext(ctx,
			"UPDATE videos SET name = ?, duration = ?, likes = ? WHERE id = ?",
			video.Name, video.Duration, video.Likes, video.ID)
		if err != nil {
			return handleSQLiteError(err, "failed to update video")
		}
		return replaceSQLiteLikes(ctx, tx, video)
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// withTx runs fn in a transaction, holding the writer lock
func (r *sqliteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return handleSQLiteError(err, "failed to begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return handleSQLiteError(err, "failed to commit transaction")
	}
	return nil
}

func findSQLiteVideo(ctx context.Context, q sqlQuerier, id int64) (*model.Video, error) {
	row := q.QueryRowContext(ctx, sqliteSelect+" WHERE v.id = ?", id)
	video, err := scanSQLiteVideo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handleSQLiteError(err, "failed to get video")
	}
	return video, nil
}

// replaceSQLiteLikes rewrites the video_likes rows of a video
func replaceSQLiteLikes(ctx context.Context, q sqlQuerier, video *model.Video) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM video_likes WHERE video_id = ?", video.ID); err != nil {
		return handleSQLiteError(err, "failed to clear video likes")
	}
	for _, username := range video.LikedBy {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO video_likes (video_id, username) VALUES (?, ?)",
			video.ID, username); err != nil {
			return handleSQLiteError(err, "failed to store video like")
		}
	}
	return nil
}

// handleSQLiteError converts SQLite-specific errors to appropriate AppError codes
func handleSQLiteError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return apperrors.Wrap(err, apperrors.CodeConflict, "video already exists")
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return apperrors.Wrap(err, apperrors.CodeInternal, "database is locked")
	}

	// Extended result codes may be disabled on the connection
	if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE"):
			return apperrors.Wrap(err, apperrors.CodeConflict, "video already exists")
		case strings.Contains(msg, "NOT NULL"):
			return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")
		default:
			return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")
		}
	}
	return apperrors.Wrap(err, apperrors.CodeInternal, operation)
}
