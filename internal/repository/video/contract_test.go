package video

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
)

// runRepositoryContract exercises the behaviour every Repository implementation shares
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("Save assigns ids and FindByID returns the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		first, err := repo.Save(ctx, &model.Video{Name: "clip", Duration: 120})
		require.NoError(t, err)
		second, err := repo.Save(ctx, &model.Video{Name: "trailer", Duration: 30})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, &model.Video{ID: first.ID, Name: "clip", Duration: 120, Likes: 0, LikedBy: []string{}}, got)
	})

	t.Run("Save with a known id overwrites", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		stored, err := repo.Save(ctx, &model.Video{Name: "clip", Duration: 120})
		require.NoError(t, err)

		stored.Name = "renamed"
		stored.AddLike("alice")
		_, err = repo.Save(ctx, stored)
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Name)
		assert.Equal(t, []string{"alice"}, got.LikedBy)
		assert.Equal(t, int64(1), got.Likes)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("FindByID reports NotFound", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.FindByID(testContext(t), 12345)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
		assert.Nil(t, got)
	})

	t.Run("FindAll on an empty store returns an empty slice", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.FindAll(testContext(t))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("FindByName matches exactly", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		for _, name := range []string{"clip", "clip 2", "Clip", "clip"} {
			_, err := repo.Save(ctx, &model.Video{Name: name, Duration: 10})
			require.NoError(t, err)
		}

		got, err := repo.FindByName(ctx, "clip")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.Equal(t, "clip", v.Name)
		}
		assert.Less(t, got[0].ID, got[1].ID)

		none, err := repo.FindByName(ctx, "missing")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("FindByDurationLessThan is strict", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		for _, d := range []int64{50, 120, 99, 100} {
			_, err := repo.Save(ctx, &model.Video{Name: "v", Duration: d})
			require.NoError(t, err)
		}

		got, err := repo.FindByDurationLessThan(ctx, 100)
		require.NoError(t, err)
		durations := make([]int64, 0, len(got))
		for _, v := range got {
			durations = append(durations, v.Duration)
		}
		assert.ElementsMatch(t, []int64{50, 99}, durations)
	})

	t.Run("Update persists the mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		stored, err := repo.Save(ctx, &model.Video{Name: "clip", Duration: 120})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, stored.ID, func(v *model.Video) error {
			v.AddLike("bob")
			v.AddLike("alice")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, updated.LikedBy)

		got, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("Update leaves the record untouched when mutate fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		stored, err := repo.Save(ctx, &model.Video{Name: "clip", Duration: 120, LikedBy: []string{"alice"}})
		require.NoError(t, err)

		rejected := apperrors.New(apperrors.CodeInvalidState, "video already liked")
		_, err = repo.Update(ctx, stored.ID, func(v *model.Video) error {
			v.AddLike("mallory")
			return rejected
		})
		assert.Same(t, rejected, err)

		got, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, got.LikedBy)
		assert.Equal(t, int64(1), got.Likes)
	})

	t.Run("Update reports NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Update(testContext(t), 999, func(v *model.Video) error { return nil })
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("concurrent Updates are not lost", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		stored, err := repo.Save(ctx, &model.Video{Name: "clip", Duration: 120})
		require.NoError(t, err)

		const users = 16
		var wg sync.WaitGroup
		errs := make(chan error, users)
		for i := 0; i < users; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Update(ctx, stored.ID, func(v *model.Video) error {
					v.AddLike(fmt.Sprintf("user-%02d", i))
					return nil
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(users), got.Likes)
		assert.Len(t, got.LikedBy, users)
	})

	t.Run("CreateBatch stores every video with fresh ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := testContext(t)

		err := repo.CreateBatch(ctx, []*model.Video{
			{ID: 500, Name: "a", Duration: 1},
			{Name: "b", Duration: 2},
			{Name: "c", Duration: 3},
		})
		require.NoError(t, err)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for _, v := range all {
			assert.NotEqual(t, int64(500), v.ID)
			assert.Equal(t, int64(0), v.Likes)
		}
	})
}
