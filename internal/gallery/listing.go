package gallery

import (
	"context"
	"slices"
	"time"

	"github.com/damacus/iron-gallery/internal/services"
)

// ImagePage is one page of a folder's images, newest first.
type ImagePage struct {
	Images []Image `json:"images"`
	Token  string  `json:"token,omitempty"`
}

// FolderPage is one page of folder names.
type FolderPage struct {
	Folders []string `json:"folders"`
	Token   string   `json:"token,omitempty"`
}

// ListImages lists one page of images in folderName, resuming from token
// when it is non-empty.
func (s *Service) ListImages(ctx context.Context, folderName string, pageSize int, token string) (ImagePage, error) {
	if folderName == "" {
		return ImagePage{}, invalidInput("folder name is empty")
	}

	prefix := folderName + services.Delimiter
	opts := services.ListOptions{
		Prefix:            prefix,
		MaxKeys:           pageSize,
		ContinuationToken: token,
	}
	s.logger.InfoContext(ctx, "listing images", "bucket", s.store.Bucket(), "prefix", prefix, "max_keys", pageSize, "has_token", token != "")

	page, err := s.store.ListPage(ctx, opts)
	if err != nil {
		return ImagePage{}, err
	}

	images := make([]Image, 0, len(page.Objects))
	for _, obj := range page.Objects {
		// folder marker objects created by consoles
		if obj.Key == prefix {
			continue
		}
		folder, id, err := DecodeKey(obj.Key)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable key", "key", obj.Key)
			continue
		}
		images = append(images, newImage(folder, id, obj.LastModified))
	}

	// stable: equal timestamps keep backend (key) order. Compared at the
	// precision UploadDate is rendered with.
	slices.SortStableFunc(images, func(a, b Image) int {
		return b.modified.Truncate(time.Millisecond).Compare(a.modified.Truncate(time.Millisecond))
	})

	return ImagePage{Images: images, Token: page.NextContinuationToken}, nil
}

// ListFolders lists one page of folders. The default folder is put first on
// the first page when the backend did not return it there, and dropped from
// later pages, so a full enumeration yields it exactly once.
func (s *Service) ListFolders(ctx context.Context, pageSize int, token, defaultFolder string) (FolderPage, error) {
	opts := services.ListOptions{
		Delimiter:         services.Delimiter,
		MaxKeys:           pageSize,
		ContinuationToken: token,
	}
	s.logger.InfoContext(ctx, "listing folders", "bucket", s.store.Bucket(), "max_keys", pageSize, "has_token", token != "")

	page, err := s.store.ListPage(ctx, opts)
	if err != nil {
		return FolderPage{}, err
	}

	folders := make([]string, 0, len(page.CommonPrefixes)+1)
	for _, p := range page.CommonPrefixes {
		name := NormalizeFolderName(p)
		if name == "" {
			continue
		}
		if token != "" && name == defaultFolder {
			continue
		}
		folders = append(folders, name)
	}
	if token == "" {
		folders = EnsureDefaultFolder(folders, defaultFolder)
	}

	s.logger.DebugContext(ctx, "folders listed", "folders", folders, "has_more", page.HasMore())
	return FolderPage{Folders: folders, Token: page.NextContinuationToken}, nil
}
