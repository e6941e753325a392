package video

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Taichi-iskw/vidlike/internal/model"
)

// Formatter defines interface for output formatting
type Formatter interface {
	FormatVideo(video *model.Video) (string, error)
	FormatVideos(videos []*model.Video) (string, error)
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// FormatVideo formats one video as a JSON object
func (f *JSONFormatter) FormatVideo(video *model.Video) (string, error) {
	return marshalIndent(video)
}

// FormatVideos formats videos as a JSON array, [] when empty
func (f *JSONFormatter) FormatVideos(videos []*model.Video) (string, error) {
	if videos == nil {
		videos = []*model.Video{}
	}
	return marshalIndent(videos)
}

func marshalIndent(v any) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

// FormatVideo formats one video as labelled lines
func (f *TextFormatter) FormatVideo(video *model.Video) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("ID: %d\n", video.ID))
	output.WriteString(fmt.Sprintf("Name: %s\n", video.Name))
	output.WriteString(fmt.Sprintf("Duration: %ds\n", video.Duration))
	output.WriteString(fmt.Sprintf("Likes: %d", video.Likes))
	if len(video.LikedBy) > 0 {
		output.WriteString(fmt.Sprintf("\nLiked By: %s", strings.Join(video.LikedBy, ", ")))
	}

	return output.String(), nil
}

// FormatVideos formats videos separated by ---
func (f *TextFormatter) FormatVideos(videos []*model.Video) (string, error) {
	if len(videos) == 0 {
		return "No videos found", nil
	}

	blocks := make([]string, 0, len(videos))
	for _, video := range videos {
		block, err := f.FormatVideo(video)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n---\n"), nil
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return &JSONFormatter{}, nil
	case "text", "txt":
		return &TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
