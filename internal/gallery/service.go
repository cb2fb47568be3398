package gallery

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/damacus/iron-gallery/internal/services"
	"github.com/damacus/iron-gallery/internal/utils"
)

// Options are the folder settings the service is constructed with.
type Options struct {
	// DefaultFolder is always present in folder listings
	DefaultFolder string

	// SuggestFolder triggers a notification when an image is uploaded into it
	SuggestFolder string

	// PageSize bounds every listing call
	PageSize int
}

// Service performs gallery operations against one bucket.
type Service struct {
	store    services.ObjectStore
	notifier services.Notifier
	opts     Options
	logger   *slog.Logger
	newID    func() string
}

// NewService wires a store and a notifier. A nil notifier disables
// suggestion notifications and a nil logger falls back to slog.Default.
func NewService(store services.ObjectStore, notifier services.Notifier, opts Options, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = services.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		newID:    NewImageID,
	}
}

// Options returns the settings the service was built with.
func (s *Service) Options() Options {
	return s.opts
}

// Upload stores an encoded image under a fresh key in folderName and
// returns the key.
func (s *Service) Upload(ctx context.Context, folderName, encodedImage string) (string, error) {
	if err := validateFolderName(folderName); err != nil {
		return "", err
	}
	data, err := DecodeImage(encodedImage)
	if err != nil {
		return "", err
	}

	if detected := mimetype.Detect(data); !strings.HasPrefix(detected.String(), "image/") {
		s.logger.WarnContext(ctx, "payload does not look like an image", "folder", folderName, "detected", detected.String())
	}

	key, err := BuildKey(folderName, s.newID())
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "storing image", "bucket", s.store.Bucket(), "key", key, "size", utils.HumanSize(int64(len(data))), "content_type", ImageContentType)
	if err := s.store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), ImageContentType); err != nil {
		return "", err
	}

	if IsFolder(folderName, s.opts.SuggestFolder) {
		if err := s.notifier.NotifySuggested(ctx, key); err != nil {
			s.logger.ErrorContext(ctx, "failed to notify about suggested image", "key", key, "error", err)
		}
	}
	return key, nil
}

// Delete permanently removes one image.
func (s *Service) Delete(ctx context.Context, folderName, imageID string) error {
	key, err := ObjectKey(folderName, imageID)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "deleting image", "bucket", s.store.Bucket(), "key", key)
	return s.store.RemoveObject(ctx, key)
}

func validateFolderName(name string) error {
	if name == "" {
		return invalidInput("folder name is empty")
	}
	if strings.Contains(name, services.Delimiter) {
		return invalidInput("folder name %q must not contain %q", name, services.Delimiter)
	}
	return nil
}
