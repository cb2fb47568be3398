package services

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

// Error is a failed backend call with the operation and object it concerned.
type Error struct {
	// Op is the backend operation, e.g. "list", "put", "copy", "delete", "publish"
	Op string

	// Bucket is the bucket or topic the call targeted
	Bucket string

	// Key is the object key, when the call concerned a single object
	Key string

	// Err is the error returned by the SDK
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Bucket, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the SDK's own message, passed through to callers untouched.
func (e *Error) Message() string {
	return e.Err.Error()
}

// Code returns the provider error code (e.g. "NoSuchKey") when the SDK
// reported one.
func (e *Error) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return minio.ToErrorResponse(e.Err).Code
}

func newError(op, bucket, key string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Err: err}
}
