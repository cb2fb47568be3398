package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioCore is the part of minio.Core the store calls. Core is used instead
// of Client because its ListObjectsV2 exposes real continuation tokens.
type MinioCore interface {
	ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxkeys int) (minio.ListBucketV2Result, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioAdminClient is the madmin method used for readiness
type MinioAdminClient interface {
	ServerInfo(ctx context.Context, opts ...func(*madmin.ServerInfoOpts)) (madmin.InfoMessage, error)
}

// coreClient adapts *minio.Core, whose own PutObject and CopyObject have
// lower-level signatures than the embedded Client's.
type coreClient struct {
	core *minio.Core
}

func (c *coreClient) ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxkeys int) (minio.ListBucketV2Result, error) {
	return c.core.ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter, maxkeys)
}

func (c *coreClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.core.Client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (c *coreClient) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	return c.core.Client.CopyObject(ctx, dst, src)
}

func (c *coreClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return c.core.Client.RemoveObject(ctx, bucketName, objectName, opts)
}

// MinioCredentials are the connection details for a MinIO deployment
type MinioCredentials struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	// UseSSL overrides endpoint-based detection when set
	UseSSL *bool
}

func (c MinioCredentials) secure() bool {
	if c.UseSSL != nil {
		return *c.UseSSL
	}
	return shouldUseSSL(c.Endpoint)
}

// MinioStore implements ObjectStore and Readiness on a MinIO (or any
// S3-compatible) endpoint.
type MinioStore struct {
	client MinioCore
	admin  MinioAdminClient
	bucket string
}

// NewMinioStore connects the object and admin clients for bucket.
func NewMinioStore(creds MinioCredentials, bucket string) (*MinioStore, error) {
	core, err := minio.NewCore(creds.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Secure: creds.secure(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	admin, err := madmin.NewWithOptions(creds.Endpoint, &madmin.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Secure: creds.secure(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio admin client: %w", err)
	}
	return NewMinioStoreWithClients(&coreClient{core: core}, admin, bucket), nil
}

// NewMinioStoreWithClients builds a store on pre-built clients.
func NewMinioStoreWithClients(client MinioCore, admin MinioAdminClient, bucket string) *MinioStore {
	return &MinioStore{client: client, admin: admin, bucket: bucket}
}

func (s *MinioStore) Bucket() string {
	return s.bucket
}

func (s *MinioStore) ListPage(ctx context.Context, opts ListOptions) (ListPage, error) {
	if err := ctx.Err(); err != nil {
		return ListPage{}, newError("list", s.bucket, opts.Prefix, err)
	}

	// Core.ListObjectsV2 takes no context; a cancellation during the call is
	// only seen once it returns.
	res, err := s.client.ListObjectsV2(s.bucket, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, pageSize(opts.MaxKeys))
	if err != nil {
		return ListPage{}, newError("list", s.bucket, opts.Prefix, err)
	}
	if err := ctx.Err(); err != nil {
		return ListPage{}, newError("list", s.bucket, opts.Prefix, err)
	}

	page := ListPage{}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	for _, p := range res.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, p.Prefix)
	}
	if res.IsTruncated {
		page.NextContinuationToken = res.NextContinuationToken
	}
	return page, nil
}

func (s *MinioStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return newError("put", s.bucket, key, err)
	}
	return nil
}

func (s *MinioStore) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: srcKey},
	)
	if err != nil {
		return newError("copy", s.bucket, srcKey, err)
	}
	return nil
}

func (s *MinioStore) RemoveObject(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return newError("delete", s.bucket, key, err)
	}
	return nil
}

// Ready asks the admin API for server info and requires an online deployment.
func (s *MinioStore) Ready(ctx context.Context) error {
	info, err := s.admin.ServerInfo(ctx)
	if err != nil {
		return newError("server-info", s.bucket, "", err)
	}
	if info.Mode != "" && info.Mode != "online" {
		return newError("server-info", s.bucket, "", fmt.Errorf("deployment is %s", info.Mode))
	}
	return nil
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, ...), not domains like minio.example.com
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}
