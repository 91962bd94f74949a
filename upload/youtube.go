// Package upload publishes finished videos to YouTube with a service
// account. The upload is optional; the processor skips it when no
// credentials are configured.
package upload

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"geofacts/config"
)

// Metadata describes the YouTube listing of an uploaded video.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

// YouTube wraps an authenticated YouTube Data API client.
type YouTube struct {
	service *youtube.Service
}

// NewYouTube builds an uploader from a service-account JSON file.
func NewYouTube(serviceAccountFile string) (*YouTube, error) {
	ctx := context.Background()

	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTube{service: service}, nil
}

// Upload publishes the video file and returns the new video ID.
func (u *YouTube) Upload(videoPath string, meta Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}
	log.Printf("📤 Uploading: %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

	v := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, v).Media(file)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	log.Printf("✅ Published: https://youtube.com/shorts/%s", resp.Id)
	return resp.Id, nil
}
