package video

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Taichi-iskw/vidlike/internal/model"
)

// MutateFunc changes a video in place. Returning an error aborts the
// update without writing anything.
type MutateFunc func(video *model.Video) error

// Repository defines operations for Video persistence
type Repository interface {
	// FindAll retrieves every video ordered by ID
	FindAll(ctx context.Context) ([]*model.Video, error)

	// FindByID retrieves a video by its ID
	FindByID(ctx context.Context, id int64) (*model.Video, error)

	// FindByName retrieves videos whose name equals name
	FindByName(ctx context.Context, name string) ([]*model.Video, error)

	// FindByDurationLessThan retrieves videos shorter than duration
	FindByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error)

	// Save inserts a video without an ID (or with an unknown one) and
	// overwrites the record otherwise
	Save(ctx context.Context, video *model.Video) (*model.Video, error)

	// CreateBatch inserts videos in bulk, ignoring any IDs they carry
	CreateBatch(ctx context.Context, videos []*model.Video) error

	// Update loads the video under an exclusive per-ID lock, applies
	// mutate and persists the result
	Update(ctx context.Context, id int64, mutate MutateFunc) (*model.Video, error)
}

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}
