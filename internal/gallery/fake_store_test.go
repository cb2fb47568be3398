package gallery

import (
	"context"
	"io"
	"log/slog"

	"github.com/damacus/iron-gallery/internal/services"
)

// fakeStore records every backend call in order.
type fakeStore struct {
	calls []string

	page     services.ListPage
	lastList services.ListOptions
	put      map[string][]byte
	putType  string

	listErr   error
	putErr    error
	copyErr   error
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{put: map[string][]byte{}}
}

func (f *fakeStore) Bucket() string { return "test-bucket" }

func (f *fakeStore) ListPage(_ context.Context, opts services.ListOptions) (services.ListPage, error) {
	f.calls = append(f.calls, "list")
	f.lastList = opts
	if f.listErr != nil {
		return services.ListPage{}, f.listErr
	}
	return f.page, nil
}

func (f *fakeStore) PutObject(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	f.calls = append(f.calls, "put "+key)
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.put[key] = data
	f.putType = contentType
	return nil
}

func (f *fakeStore) CopyObject(_ context.Context, srcKey, dstKey string) error {
	f.calls = append(f.calls, "copy "+srcKey+" "+dstKey)
	return f.copyErr
}

func (f *fakeStore) RemoveObject(_ context.Context, key string) error {
	f.calls = append(f.calls, "delete "+key)
	return f.removeErr
}

type fakeNotifier struct {
	keys []string
	err  error
}

func (n *fakeNotifier) NotifySuggested(_ context.Context, key string) error {
	n.keys = append(n.keys, key)
	return n.err
}

func newTestService(store *fakeStore, notifier services.Notifier) *Service {
	return NewService(store, notifier, Options{
		DefaultFolder: "uncategorized",
		SuggestFolder: "suggest",
		PageSize:      10,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
