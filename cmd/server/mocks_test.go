package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// MockBackend implements services.ObjectStore and services.Readiness for testing
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Bucket() string {
	return "memes-bucket"
}

func (m *MockBackend) ListPage(ctx context.Context, opts services.ListOptions) (services.ListPage, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(services.ListPage), args.Error(1)
}

func (m *MockBackend) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockBackend) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	args := m.Called(ctx, srcKey, dstKey)
	return args.Error(0)
}

func (m *MockBackend) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBackend) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySuggested(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestServer(backend *MockBackend, notifier services.Notifier) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := gallery.NewService(backend, notifier, gallery.Options{
		DefaultFolder: "uncategorized",
		SuggestFolder: "suggest",
		PageSize:      2,
	}, logger)
	return newServer(svc, backend, logger)
}
