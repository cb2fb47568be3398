package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockS3Client lets each test override only the calls it cares about.
type mockS3Client struct {
	ListObjectsV2Func func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObjectFunc     func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObjectFunc    func(context.Context, *s3.CopyObjectInput, ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObjectFunc  func(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucketFunc    func(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if m.CopyObjectFunc != nil {
		return m.CopyObjectFunc(ctx, params, optFns...)
	}
	return &s3.CopyObjectOutput{}, nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, params, optFns...)
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.HeadBucketFunc != nil {
		return m.HeadBucketFunc(ctx, params, optFns...)
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Store_ListPage_Objects(t *testing.T) {
	modified := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	client := &mockS3Client{
		ListObjectsV2Func: func(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "memes-bucket", aws.ToString(params.Bucket))
			assert.Equal(t, "memes/", aws.ToString(params.Prefix))
			assert.Equal(t, "T1", aws.ToString(params.ContinuationToken))
			assert.Equal(t, int32(20), aws.ToInt32(params.MaxKeys))
			assert.Nil(t, params.Delimiter)
			return &s3.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("memes/a.jpeg"), Size: aws.Int64(42), LastModified: aws.Time(modified)},
				},
				IsTruncated:           aws.Bool(true),
				NextContinuationToken: aws.String("T2"),
			}, nil
		},
	}
	store := NewS3StoreWithClient(client, "memes-bucket")

	page, err := store.ListPage(context.Background(), ListOptions{Prefix: "memes/", MaxKeys: 20, ContinuationToken: "T1"})
	require.NoError(t, err)

	assert.Equal(t, []ObjectInfo{{Key: "memes/a.jpeg", Size: 42, LastModified: modified}}, page.Objects)
	assert.Empty(t, page.CommonPrefixes)
	assert.Equal(t, "T2", page.NextContinuationToken)
	assert.True(t, page.HasMore())
	assert.False(t, page.Empty())
}

func TestS3Store_ListPage_CommonPrefixes(t *testing.T) {
	client := &mockS3Client{
		ListObjectsV2Func: func(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "/", aws.ToString(params.Delimiter))
			assert.Nil(t, params.Prefix)
			assert.Nil(t, params.ContinuationToken)
			assert.Equal(t, int32(DefaultPageSize), aws.ToInt32(params.MaxKeys))
			return &s3.ListObjectsV2Output{
				CommonPrefixes: []types.CommonPrefix{{Prefix: aws.String("memes/")}, {Prefix: aws.String("dank/")}},
				IsTruncated:    aws.Bool(false),
			}, nil
		},
	}
	store := NewS3StoreWithClient(client, "memes-bucket")

	page, err := store.ListPage(context.Background(), ListOptions{Delimiter: "/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"memes/", "dank/"}, page.CommonPrefixes)
	assert.False(t, page.HasMore())
}

func TestS3Store_ListPage_Error(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}
	client := &mockS3Client{
		ListObjectsV2Func: func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			return nil, apiErr
		},
	}
	store := NewS3StoreWithClient(client, "memes-bucket")

	_, err := store.ListPage(context.Background(), ListOptions{Prefix: "memes/"})
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list", storeErr.Op)
	assert.Equal(t, "NoSuchBucket", storeErr.Code())
	assert.ErrorIs(t, err, apiErr)
}

func TestS3Store_PutObject(t *testing.T) {
	var body []byte
	client := &mockS3Client{
		PutObjectFunc: func(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "memes/abc.jpeg", aws.ToString(params.Key))
			assert.Equal(t, "image/jpeg", aws.ToString(params.ContentType))
			assert.Equal(t, int64(3), aws.ToInt64(params.ContentLength))
			var err error
			body, err = io.ReadAll(params.Body)
			return &s3.PutObjectOutput{}, err
		},
	}
	store := NewS3StoreWithClient(client, "memes-bucket")

	err := store.PutObject(context.Background(), "memes/abc.jpeg", bytesReader("abc"), 3, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), body)
}

func TestS3Store_CopyObject(t *testing.T) {
	tests := []struct {
		name       string
		srcKey     string
		dstKey     string
		wantSource string
	}{
		{"plain key", "memes/abc.jpeg", "archive/abc.jpeg", "memes-bucket/memes/abc.jpeg"},
		{"space in folder", "dank memes/abc.jpeg", "archive/abc.jpeg", "memes-bucket/dank%20memes/abc.jpeg"},
		{"non-ascii folder", "café/x.jpeg", "archive/x.jpeg", "memes-bucket/caf%C3%A9/x.jpeg"},
		{"reserved characters", "a?b#c/x.jpeg", "archive/x.jpeg", "memes-bucket/a%3Fb%23c/x.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockS3Client{
				CopyObjectFunc: func(_ context.Context, params *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
					assert.Equal(t, "memes-bucket", aws.ToString(params.Bucket))
					assert.Equal(t, tt.dstKey, aws.ToString(params.Key))
					assert.Equal(t, tt.wantSource, aws.ToString(params.CopySource))
					return &s3.CopyObjectOutput{}, nil
				},
			}
			store := NewS3StoreWithClient(client, "memes-bucket")

			require.NoError(t, store.CopyObject(context.Background(), tt.srcKey, tt.dstKey))
		})
	}
}

func TestS3Store_RemoveObject_Error(t *testing.T) {
	client := &mockS3Client{
		DeleteObjectFunc: func(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
			assert.Equal(t, "memes/abc.jpeg", aws.ToString(params.Key))
			return nil, errors.New("access denied")
		},
	}
	store := NewS3StoreWithClient(client, "memes-bucket")

	err := store.RemoveObject(context.Background(), "memes/abc.jpeg")
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete", storeErr.Op)
	assert.Equal(t, "memes/abc.jpeg", storeErr.Key)
	assert.Equal(t, "access denied", storeErr.Message())
}

func TestS3Store_Ready(t *testing.T) {
	store := NewS3StoreWithClient(&mockS3Client{}, "memes-bucket")
	assert.NoError(t, store.Ready(context.Background()))

	failing := NewS3StoreWithClient(&mockS3Client{
		HeadBucketFunc: func(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
			return nil, errors.New("forbidden")
		},
	}, "memes-bucket")
	assert.Error(t, failing.Ready(context.Background()))
}

func TestS3Store_Implements_Interfaces(t *testing.T) {
	var _ ObjectStore = (*S3Store)(nil)
	var _ Readiness = (*S3Store)(nil)
}

func bytesReader(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}
