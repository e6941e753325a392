package video

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
)

const videoColumns = "id, name, duration, likes, liked_by"

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	pool Pool
}

// NewRepository creates a new PostgreSQL-backed Repository
func NewRepository(pool Pool) Repository {
	return &postgresRepository{
		pool: pool,
	}
}

// scanVideo reads one videos row in videoColumns order
func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	if err := row.Scan(&video.ID, &video.Name, &video.Duration, &video.Likes, &video.LikedBy); err != nil {
		return nil, err
	}
	video.NormalizeLikedBy()
	return &video, nil
}

// queryVideos runs a query returning videos rows
func (r *postgresRepository) queryVideos(ctx context.Context, operation string, sql string, args ...any) ([]*model.Video, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, handlePostgreSQLError(err, operation)
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, handlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}

// FindAll retrieves every video ordered by ID
func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos ORDER BY id"
	return r.queryVideos(ctx, "failed to list videos", sql)
}

// FindByID retrieves a video by its ID
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE id = $1"
	video, err := scanVideo(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get video")
	}
	return video, nil
}

// FindByName retrieves videos whose name equals name
func (r *postgresRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE name = $1 ORDER BY id"
	return r.queryVideos(ctx, "failed to find videos by name", sql, name)
}

// FindByDurationLessThan retrieves videos shorter than duration
func (r *postgresRepository) FindByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE duration < $1 ORDER BY id"
	return r.queryVideos(ctx, "failed to find videos by duration", sql, duration)
}

// Save inserts or overwrites a video
func (r *postgresRepository) Save(ctx context.Context, video *model.Video) (*model.Video, error) {
	stored := video.Clone()
	stored.NormalizeLikedBy()

	if stored.ID == 0 {
		sql := "INSERT INTO videos (name, duration, likes, liked_by) VALUES ($1, $2, $3, $4) RETURNING id"
		err := r.pool.QueryRow(ctx, sql, stored.Name, stored.Duration, stored.Likes, stored.LikedBy).Scan(&stored.ID)
		if err != nil {
			return nil, handlePostgreSQLError(err, "failed to create video")
		}
		return stored, nil
	}

	sql := `INSERT INTO videos (id, name, duration, likes, liked_by) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, duration = EXCLUDED.duration,
		likes = EXCLUDED.likes, liked_by = EXCLUDED.liked_by`
	_, err := r.pool.Exec(ctx, sql, stored.ID, stored.Name, stored.Duration, stored.Likes, stored.LikedBy)
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to save video")
	}
	return stored, nil
}

// CreateBatch creates multiple video records using bulk insert (COPY FROM)
func (r *postgresRepository) CreateBatch(ctx context.Context, videos []*model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	// Prepare data for COPY FROM; ids come from the sequence
	rows := make([][]any, len(videos))
	for i, video := range videos {
		v := video.Clone()
		v.NormalizeLikedBy()
		rows[i] = []any{v.Name, v.Duration, v.Likes, v.LikedBy}
	}

	tableName := pgx.Identifier{"videos"}
	columnNames := []string{"name", "duration", "likes", "liked_by"}

	_, err := r.pool.CopyFrom(ctx, tableName, columnNames, pgx.CopyFromRows(rows))
	if err != nil {
		return handlePostgreSQLError(err, "failed to create videos in batch using COPY FROM")
	}

	return nil
}

// Update locks the row with SELECT ... FOR UPDATE, applies mutate and
// writes the result in the same transaction
func (r *postgresRepository) Update(ctx context.Context, id int64, mutate MutateFunc) (*model.Video, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to begin transaction")
	}

	video, err := updateInTx(ctx, tx, id, mutate)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handlePostgreSQLError(err, "failed to commit video update")
	}

	return video, nil
}

func updateInTx(ctx context.Context, tx pgx.Tx, id int64, mutate MutateFunc) (*model.Video, error) {
	sql := "SELECT " + videoColumns + " FROM videos WHERE id = $1 FOR UPDATE"
	video, err := scanVideo(tx.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handlePostgreSQLError(err, "failed to lock video")
	}

	if err := mutate(video); err != nil {
		return nil, err
	}
	video.ID = id
	video.NormalizeLikedBy()

	sql = "UPDATE videos SET name = $2, duration = $3, likes = $4, liked_by = $5 WHERE id = $1"
	if _, err := tx.Exec(ctx, sql, video.ID, video.Name, video.Duration, video.Likes, video.LikedBy); err != nil {
		return nil, handlePostgreSQLError(err, "failed to update video")
	}

	return video, nil
}
