package video

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
)

// Mock video service
type mockVideoService struct {
	ListVideosFunc               func(ctx context.Context) ([]*model.Video, error)
	SearchByTitleFunc            func(ctx context.Context, title string) ([]*model.Video, error)
	SearchByDurationLessThanFunc func(ctx context.Context, duration int64) ([]*model.Video, error)
	GetVideoFunc                 func(ctx context.Context, id int64) (*model.Video, error)
	CreateVideoFunc              func(ctx context.Context, video *model.Video) (*model.Video, error)
	ImportVideosFunc             func(ctx context.Context, videos []*model.Video) (int, error)
	LikeVideoFunc                func(ctx context.Context, id int64, username string) error
	UnlikeVideoFunc              func(ctx context.Context, id int64, username string) error
}

func (m *mockVideoService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	if m.ListVideosFunc != nil {
		return m.ListVideosFunc(ctx)
	}
	return []*model.Video{}, nil
}

func (m *mockVideoService) SearchByTitle(ctx context.Context, title string) ([]*model.Video, error) {
	if m.SearchByTitleFunc != nil {
		return m.SearchByTitleFunc(ctx, title)
	}
	return []*model.Video{}, nil
}

func (m *mockVideoService) SearchByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	if m.SearchByDurationLessThanFunc != nil {
		return m.SearchByDurationLessThanFunc(ctx, duration)
	}
	return []*model.Video{}, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	if m.GetVideoFunc != nil {
		return m.GetVideoFunc(ctx, id)
	}
	return &model.Video{ID: id, LikedBy: []string{}}, nil
}

func (m *mockVideoService) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	if m.CreateVideoFunc != nil {
		return m.CreateVideoFunc(ctx, video)
	}
	return video, nil
}

func (m *mockVideoService) ImportVideos(ctx context.Context, videos []*model.Video) (int, error) {
	if m.ImportVideosFunc != nil {
		return m.ImportVideosFunc(ctx, videos)
	}
	return len(videos), nil
}

func (m *mockVideoService) LikeVideo(ctx context.Context, id int64, username string) error {
	if m.LikeVideoFunc != nil {
		return m.LikeVideoFunc(ctx, id, username)
	}
	return nil
}

func (m *mockVideoService) UnlikeVideo(ctx context.Context, id int64, username string) error {
	if m.UnlikeVideoFunc != nil {
		return m.UnlikeVideoFunc(ctx, id, username)
	}
	return nil
}

// execute runs the video command tree with args and returns stdout
func execute(t *testing.T, svc *mockVideoService, args ...string) (string, error) {
	t.Helper()
	cmd := NewVideoCommand(svc)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		setupMock      func(*mockVideoService)
		expectedOutput string
		wantErr        bool
	}{
		{
			name: "json output",
			args: []string{"list"},
			setupMock: func(m *mockVideoService) {
				m.ListVideosFunc = func(ctx context.Context) ([]*model.Video, error) {
					return []*model.Video{{ID: 1, Name: "clip", Duration: 120, LikedBy: []string{}}}, nil
				}
			},
			expectedOutput: `"name": "clip"`,
		},
		{
			name:           "empty list prints an empty array",
			args:           []string{"list"},
			setupMock:      func(m *mockVideoService) {},
			expectedOutput: "[]",
		},
		{
			name:           "text output",
			args:           []string{"list", "--format", "text"},
			setupMock:      func(m *mockVideoService) {},
			expectedOutput: "No videos found",
		},
		{
			name:      "unknown format",
			args:      []string{"list", "--format", "xml"},
			setupMock: func(m *mockVideoService) {},
			wantErr:   true,
		},
		{
			name: "service error",
			args: []string{"list"},
			setupMock: func(m *mockVideoService) {
				m.ListVideosFunc = func(ctx context.Context) ([]*model.Video, error) {
					return nil, apperrors.New(apperrors.CodeInternal, "database down")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockVideoService{}
			tt.setupMock(mockService)

			output, err := execute(t, mockService, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestGetCommand(t *testing.T) {
	t.Run("prints the video", func(t *testing.T) {
		output, err := execute(t, &mockVideoService{}, "get", "7")
		require.NoError(t, err)

		var got model.Video
		require.NoError(t, json.Unmarshal([]byte(output), &got))
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("non-integer id", func(t *testing.T) {
		_, err := execute(t, &mockVideoService{}, "get", "seven")
		assert.ErrorContains(t, err, "must be an integer")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockVideoService{
			GetVideoFunc: func(ctx context.Context, id int64) (*model.Video, error) {
				return nil, apperrors.New(apperrors.CodeNotFound, "video not found")
			},
		}
		_, err := execute(t, svc, "get", "7")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := execute(t, &mockVideoService{}, "get")
		assert.Error(t, err)
	})
}

func TestSearchCommand(t *testing.T) {
	var gotTitle string
	var gotDuration int64
	svc := &mockVideoService{
		SearchByTitleFunc: func(ctx context.Context, title string) ([]*model.Video, error) {
			gotTitle = title
			return []*model.Video{}, nil
		},
		SearchByDurationLessThanFunc: func(ctx context.Context, duration int64) ([]*model.Video, error) {
			gotDuration = duration
			return []*model.Video{}, nil
		},
	}

	_, err := execute(t, svc, "search", "title", "my clip")
	require.NoError(t, err)
	assert.Equal(t, "my clip", gotTitle)

	_, err = execute(t, svc, "search", "duration", "100")
	require.NoError(t, err)
	assert.Equal(t, int64(100), gotDuration)

	_, err = execute(t, svc, "search", "duration", "long")
	assert.ErrorContains(t, err, "invalid duration")
}

func TestCreateCommand(t *testing.T) {
	var got *model.Video
	svc := &mockVideoService{
		CreateVideoFunc: func(ctx context.Context, video *model.Video) (*model.Video, error) {
			got = video
			stored := *video
			stored.ID = 1
			stored.LikedBy = []string{}
			return &stored, nil
		},
	}

	output, err := execute(t, svc, "create", "--name", "clip", "--duration", "120")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "clip", got.Name)
	assert.Equal(t, int64(120), got.Duration)
	assert.Contains(t, output, `"id": 1`)

	_, err = execute(t, &mockVideoService{}, "create", "--duration", "120")
	assert.Error(t, err, "name is required")
}

func TestLikeUnlikeCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		opErr    error
		wantErr  bool
		wantUser string
	}{
		{name: "like", args: []string{"like", "3", "--user", "alice"}, wantUser: "alice"},
		{name: "unlike", args: []string{"unlike", "3", "-u", "alice"}, wantUser: "alice"},
		{name: "like missing user", args: []string{"like", "3"}, wantErr: true},
		{name: "like invalid state", args: []string{"like", "3", "--user", "alice"}, opErr: apperrors.New(apperrors.CodeInvalidState, "video already liked"), wantErr: true},
		{name: "unlike invalid state", args: []string{"unlike", "3", "--user", "alice"}, opErr: apperrors.New(apperrors.CodeInvalidState, "video not liked"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotUser string
			record := func(ctx context.Context, id int64, username string) error {
				gotID, gotUser = id, username
				return tt.opErr
			}
			svc := &mockVideoService{LikeVideoFunc: record, UnlikeVideoFunc: record}

			_, err := execute(t, svc, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				if tt.opErr != nil {
					assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), gotID)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "videos.json")
	require.NoError(t, os.WriteFile(valid, []byte(`[{"name":"a","duration":1},{"name":"b","duration":2}]`), 0o600))

	malformed := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"name":`), 0o600))

	var imported []*model.Video
	svc := &mockVideoService{
		ImportVideosFunc: func(ctx context.Context, videos []*model.Video) (int, error) {
			imported = videos
			return len(videos), nil
		},
	}

	output, err := execute(t, svc, "import", valid)
	require.NoError(t, err)
	assert.Contains(t, output, "2 video(s) imported successfully")
	require.Len(t, imported, 2)
	assert.Equal(t, "b", imported[1].Name)

	_, err = execute(t, svc, "import", malformed)
	assert.ErrorContains(t, err, "failed to parse")

	_, err = execute(t, svc, "import", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}
