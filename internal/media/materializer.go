// Package media materializes remote event images as deduplicated media
// entities backed by files on disk.
package media

import (
	"crypto/md5" //nolint:gosec // used for deterministic filenames, not security
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/errors"
	"github.com/Dresse/eksponent-test/internal/filestore"
	"github.com/Dresse/eksponent-test/internal/logging"
)

// Package-level logger for media operations
var (
	mediaLogger   *slog.Logger
	mediaLevelVar = new(slog.LevelVar)
	loggerOnce    sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		mediaLevelVar.Set(slog.LevelInfo)

		var err error
		mediaLogger, _, err = logging.NewFileLogger("logs/media.log", "media", mediaLevelVar)
		if err != nil {
			logging.Error("Failed to initialize media file logger", "error", err)
			mediaLogger = logging.NewDiscardLogger("media", mediaLevelVar)
		}
	})
	return mediaLogger
}

// fallbackExtension is used when the image URL path carries no extension.
const fallbackExtension = "svg"

// titleSanitizer matches every rune that is not filesystem safe.
var titleSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Materializer downloads event images to deterministic destinations and
// wraps each stored file in exactly one media entity.
type Materializer struct {
	client *http.Client
	store  datastore.Interface
	files  filestore.Interface
	dir    string
}

// New creates a materializer writing images below dir.
func New(client *http.Client, store datastore.Interface, files filestore.Interface, dir string) *Materializer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Materializer{
		client: client,
		store:  store,
		files:  files,
		dir:    dir,
	}
}

// DeterministicFilename derives the stable filename for an image from its
// title and URL. The hash covers the URL string, not the file bytes, so the
// same (title, URL) pair resolves to the same name on every run.
func DeterministicFilename(imageURL, title string) string {
	extension := extensionFromURL(imageURL)
	sanitizedTitle := titleSanitizer.ReplaceAllString(title, "_")
	hash := md5.Sum([]byte(imageURL)) //nolint:gosec // deterministic naming only
	return sanitizedTitle + "_" + hex.EncodeToString(hash[:]) + "." + extension
}

// extensionFromURL returns the filename extension of the URL's path
// component, without the leading dot, falling back to a fixed default.
func extensionFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fallbackExtension
	}
	ext := strings.TrimPrefix(path.Ext(parsed.Path), ".")
	if ext == "" {
		return fallbackExtension
	}
	return ext
}

// Materialize downloads the image and returns the media entity wrapping the
// stored file. Repeated calls with the same title and URL resolve to the same
// file path and reuse the existing media entity. Any failure is returned to
// the caller, which proceeds without an image.
func (m *Materializer) Materialize(imageURL, title string) (*datastore.Media, error) {
	destination := filepath.Join(m.dir, DeterministicFilename(imageURL, title))

	parsed, err := url.ParseRequestURI(imageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Newf("invalid file URL: %s", imageURL).
			Component("media").
			Category(errors.CategoryValidation).
			Context("operation", "validate_image_url").
			Build()
	}

	if err := m.files.EnsureDirectory(m.dir); err != nil {
		return nil, err
	}

	data, err := m.download(imageURL)
	if err != nil {
		return nil, err
	}

	// Overwrite-on-conflict keeps the disk from filling up with copies of
	// the same file.
	if _, err := m.files.WriteReplacing(destination, data); err != nil {
		return nil, err
	}

	return m.wrapperFor(destination, title)
}

// download fetches the image bytes; an empty response body is a failure.
func (m *Materializer) download(imageURL string) ([]byte, error) {
	resp, err := m.client.Get(imageURL)
	if err != nil {
		return nil, errors.New(err).
			Component("media").
			Category(errors.CategoryImageFetch).
			Context("operation", "download_image").
			Context("url", imageURL).
			Build()
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			getLogger().Debug("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(fmt.Errorf("received non-OK response (%d)", resp.StatusCode)).
			Component("media").
			Category(errors.CategoryImageFetch).
			Context("operation", "download_image").
			Context("url", imageURL).
			Context("status_code", fmt.Sprintf("%d", resp.StatusCode)).
			Build()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("media").
			Category(errors.CategoryImageFetch).
			Context("operation", "read_image_body").
			Context("url", imageURL).
			Build()
	}
	if len(data) == 0 {
		return nil, errors.Newf("failed to download file, empty response").
			Component("media").
			Category(errors.CategoryImageFetch).
			Context("url", imageURL).
			Build()
	}
	return data, nil
}

// wrapperFor returns the media entity referencing the file, creating it only
// when no wrapper exists yet for that exact path.
func (m *Materializer) wrapperFor(filePath, title string) (*datastore.Media, error) {
	existing, err := m.store.MediaByFilePath(filePath)
	if err == nil {
		getLogger().Debug("Reusing existing media entity",
			"media_id", existing.ID,
			"file_path", filePath)
		return existing, nil
	}
	if !errors.Is(err, datastore.ErrMediaNotFound) {
		return nil, err
	}

	created := &datastore.Media{
		Name:     title,
		Alt:      title,
		FilePath: filePath,
	}
	if err := m.store.SaveMedia(created); err != nil {
		return nil, err
	}

	getLogger().Info("Created media entity for imported image",
		"media_id", created.ID,
		"file_path", filePath)
	return created, nil
}
