package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Bucket() string {
	return "memes-bucket"
}

func (m *MockObjectStore) ListPage(ctx context.Context, opts services.ListOptions) (services.ListPage, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListPage), args.Error(1)
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	args := m.Called(ctx, srcKey, dstKey)
	return args.Error(0)
}

func (m *MockObjectStore) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockReadiness struct {
	mock.Mock
}

func (m *MockReadiness) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(store services.ObjectStore) *ImagesHandler {
	svc := gallery.NewService(store, nil, gallery.Options{
		DefaultFolder: "uncategorized",
		SuggestFolder: "suggest",
		PageSize:      20,
	}, discardLogger())
	return NewImagesHandler(svc, discardLogger())
}
