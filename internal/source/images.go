package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ImageCache downloads listing images into a local directory so results can
// be served without hotlinking the provider. A nil ImageCache, or any
// download failure, leaves the listing without an image path; images are
// never load-bearing.
type ImageCache struct {
	client *http.Client
	dir    string
}

// NewImageCache creates the cache directory if needed. An empty dir
// disables image caching and returns nil.
func NewImageCache(dir string) (*ImageCache, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &ImageCache{
		dir:    dir,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Download fetches the image and stores it under a name derived from the
// listing, returning the local path. Failures are logged and reported as an
// empty path.
func (c *ImageCache) Download(ctx context.Context, imageURL, listingName string) string {
	if c == nil || imageURL == "" {
		return ""
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		slog.Warn("invalid image URL", "url", imageURL, "error", err)
		return ""
	}

	ext := path.Ext(parsed.Path)
	if ext == "" {
		ext = ".jpg"
	}
	filename := safeFilename(listingName) + ext
	dest := filepath.Join(c.dir, filename)

	if _, err := os.Stat(dest); err == nil {
		return dest
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		slog.Warn("failed to build image request", "url", imageURL, "error", err)
		return ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("failed to download image", "url", imageURL, "error", err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("image download rejected", "url", imageURL, "status", resp.StatusCode)
		return ""
	}

	file, err := os.Create(dest)
	if err != nil {
		slog.Warn("failed to create image file", "path", dest, "error", err)
		return ""
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		slog.Warn("failed to write image file", "path", dest, "error", err)
		_ = os.Remove(dest)
		return ""
	}

	return dest
}

func safeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 80 {
		name = name[:80]
	}
	return "gift_" + name
}
