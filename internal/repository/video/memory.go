package video

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
)

// memoryRepository implements Repository in process memory
type memoryRepository struct {
	mu     sync.RWMutex
	videos map[int64]*model.Video
	nextID int64
}

// NewMemoryRepository creates an empty in-memory Repository
func NewMemoryRepository() Repository {
	return &memoryRepository{
		videos: make(map[int64]*model.Video),
		nextID: 1,
	}
}

func (r *memoryRepository) filter(keep func(v *model.Video) bool) []*model.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := []*model.Video{}
	for _, v := range r.videos {
		if keep(v) {
			videos = append(videos, v.Clone())
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].ID < videos[j].ID })
	return videos
}

// FindAll retrieves every video ordered by ID
func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.Video, error) {
	return r.filter(func(*model.Video) bool { return true }), nil
}

// FindByID retrieves a video by its ID
func (r *memoryRepository) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.videos[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "video not found")
	}
	return v.Clone(), nil
}

// FindByName retrieves videos whose name equals name
func (r *memoryRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	return r.filter(func(v *model.Video) bool { return v.Name == name }), nil
}

// FindByDurationLessThan retrieves videos shorter than duration
func (r *memoryRepository) FindByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	return r.filter(func(v *model.Video) bool { return v.Duration < duration }), nil
}

// Save inserts or overwrites a video
func (r *memoryRepository) Save(ctx context.Context, video *model.Video) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := video.Clone()
	stored.NormalizeLikedBy()
	r.put(stored)
	return stored.Clone(), nil
}

// CreateBatch inserts videos with fresh IDs
func (r *memoryRepository) CreateBatch(ctx context.Context, videos []*model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, video := range videos {
		stored := video.Clone()
		stored.ID = 0
		stored.NormalizeLikedBy()
		r.put(stored)
	}
	return nil
}

// Update applies mutate while holding the write lock
func (r *memoryRepository) Update(ctx context.Context, id int64, mutate MutateFunc) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.videos[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "video not found")
	}

	video := current.Clone()
	if err := mutate(video); err != nil {
		return nil, err
	}
	video.ID = id
	video.NormalizeLikedBy()
	r.videos[id] = video
	return video.Clone(), nil
}

// put stores v, assigning an ID when it has none. Callers hold mu.
func (r *memoryRepository) put(v *model.Video) {
	if v.ID == 0 {
		v.ID = r.nextID
	}
	if v.ID >= r.nextID {
		r.nextID = v.ID + 1
	}
	r.videos[v.ID] = v
}
