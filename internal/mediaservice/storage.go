package mediaservice

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

const (
	imageFolder = "articles"
	videoFolder = "articles/videos"
)

var videoExtensions = []string{".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm", ".mkv", ".m4v"}

func NewMediaStore(client *storage.Client, bucket string) (*MediaStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return &MediaStore{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload stores the file under the image or video folder depending on what the
// file looks like, and returns its public URL.
func (s *MediaStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("file name is required")
	}

	object := objectPath(name, contentType)

	writer := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, r); err != nil {
		closeErr := writer.Close()
		if closeErr != nil {
			return "", fmt.Errorf("copy object: %w (close writer: %v)", err, closeErr)
		}
		return "", fmt.Errorf("copy object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

func objectPath(name, contentType string) string {
	folder := imageFolder
	if isVideo(name, contentType) {
		folder = videoFolder
	}
	return folder + "/" + path.Base(name)
}

// isVideo reports whether the file should be stored as a video. Files already
// placed under a videos/ folder count, otherwise the content type is checked,
// falling back to a known list of video extensions.
func isVideo(name, contentType string) bool {
	if strings.Contains(name, "videos/") {
		return true
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(name))
	}
	if contentType != "" {
		return strings.HasPrefix(contentType, "video/")
	}

	ext := strings.ToLower(path.Ext(name))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
