package video

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/vidlike/internal/model"
	videorepo "github.com/Taichi-iskw/vidlike/internal/repository/video"
)

// mockRepository is a mock implementation of video.Repository for testing
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindAll(ctx context.Context) ([]*model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *mockRepository) FindByName(ctx context.Context, name string) ([]*model.Video, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

func (m *mockRepository) FindByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	args := m.Called(ctx, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, video *model.Video) (*model.Video, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *mockRepository) CreateBatch(ctx context.Context, videos []*model.Video) error {
	args := m.Called(ctx, videos)
	return args.Error(0)
}

// Update runs mutate against the video passed as the first return value,
// so tests can observe what the service did to it.
func (m *mockRepository) Update(ctx context.Context, id int64, mutate videorepo.MutateFunc) (*model.Video, error) {
	args := m.Called(ctx, id, mutate)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	video := args.Get(0).(*model.Video)
	if err := mutate(video); err != nil {
		return nil, err
	}
	return video, nil
}
