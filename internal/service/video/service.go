package video

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
	"github.com/Taichi-iskw/vidlike/internal/model"
	videorepo "github.com/Taichi-iskw/vidlike/internal/repository/video"
)

// Service is the interface for video operations
type Service interface {
	ListVideos(ctx context.Context) ([]*model.Video, error)
	SearchByTitle(ctx context.Context, title string) ([]*model.Video, error)
	SearchByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error)
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
	CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error)
	ImportVideos(ctx context.Context, videos []*model.Video) (int, error)
	LikeVideo(ctx context.Context, id int64, username string) error
	UnlikeVideo(ctx context.Context, id int64, username string) error
}

// service implements Service
type service struct {
	repo   videorepo.Repository
	logger *slog.Logger
}

// NewService creates a new Service logging through slog.Default
func NewService(repo videorepo.Repository) Service {
	return NewServiceWithLogger(repo, slog.Default())
}

// NewServiceWithLogger creates a new Service with a custom logger (for testing)
func NewServiceWithLogger(repo videorepo.Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// ListVideos returns every stored video
func (s *service) ListVideos(ctx context.Context) ([]*model.Video, error) {
	return s.repo.FindAll(ctx)
}

// SearchByTitle returns videos whose name equals title
func (s *service) SearchByTitle(ctx context.Context, title string) ([]*model.Video, error) {
	return s.repo.FindByName(ctx, title)
}

// SearchByDurationLessThan returns videos shorter than duration
func (s *service) SearchByDurationLessThan(ctx context.Context, duration int64) ([]*model.Video, error) {
	return s.repo.FindByDurationLessThan(ctx, duration)
}

// GetVideo returns a single video or NOT_FOUND
func (s *service) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateVideo stores a new video. Any id or like state sent by the caller is discarded.
func (s *service) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	if video == nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "video is required")
	}
	if err := validateVideo(video); err != nil {
		return nil, err
	}

	return s.repo.Save(ctx, freshVideo(video))
}

// ImportVideos validates and bulk inserts videos, returning how many were stored
func (s *service) ImportVideos(ctx context.Context, videos []*model.Video) (int, error) {
	fresh := make([]*model.Video, 0, len(videos))
	for i, video := range videos {
		if video == nil {
			return 0, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("video %d is required", i))
		}
		if err := validateVideo(video); err != nil {
			return 0, apperrors.Wrap(err, apperrors.CodeInvalidArg, fmt.Sprintf("invalid video at index %d", i))
		}
		fresh = append(fresh, freshVideo(video))
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateBatch(ctx, fresh); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "imported videos", "count", len(fresh))
	return len(fresh), nil
}

// LikeVideo records that username likes the video
func (s *service) LikeVideo(ctx context.Context, id int64, username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}

	video, err := s.repo.Update(ctx, id, func(v *model.Video) error {
		if !v.AddLike(username) {
			return apperrors.New(apperrors.CodeInvalidState, "video already liked")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "video liked", "video_id", id, "username", username, "likes", video.Likes)
	return nil
}

// UnlikeVideo withdraws a like previously given by username
func (s *service) UnlikeVideo(ctx context.Context, id int64, username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}

	video, err := s.repo.Update(ctx, id, func(v *model.Video) error {
		if !v.RemoveLike(username) {
			return apperrors.New(apperrors.CodeInvalidState, "video not liked")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "video unliked", "video_id", id, "username", username, "likes", video.Likes)
	return nil
}

func validateVideo(video *model.Video) *apperrors.AppError {
	if strings.TrimSpace(video.Name) == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "name is required")
	}
	if video.Duration < 0 {
		return apperrors.New(apperrors.CodeInvalidArg, "duration must not be negative")
	}
	return nil
}

// freshVideo copies the caller-controlled fields only
func freshVideo(video *model.Video) *model.Video {
	fresh := &model.Video{
		Name:     video.Name,
		Duration: video.Duration,
	}
	fresh.ResetLikes()
	return fresh
}
