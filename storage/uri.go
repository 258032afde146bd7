// Package storage provides the validated S3 locator type used for job
// definition precondition checks.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Scheme is the URI scheme every locator must carry.
const Scheme = "s3://"

const delimiter = "/"

var (
	patternValidate = regexp.MustCompile(`^s3://.*`)
	patternBucket   = regexp.MustCompile(`^s3://([^/]*)`)
	patternKey      = regexp.MustCompile(`^s3://[^/]+/([^/]*)$`)
)

// ObjectChecker tests whether a storage object exists. A confirmed
// not-found answers false; any other failure is a propagated error.
type ObjectChecker interface {
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}

// S3Uri is an immutable, validated S3 locator. The zero value is invalid;
// construct one with ParseS3Uri.
type S3Uri struct {
	path string
}

// ParseS3Uri validates path and returns it as a locator. It fails fast
// with a format error unless the path starts with the s3:// scheme.
func ParseS3Uri(path string) (S3Uri, error) {
	if !patternValidate.MatchString(path) {
		return S3Uri{}, fmt.Errorf("invalid S3 URI %q: must match ^s3://", path)
	}
	return S3Uri{path: path}, nil
}

// String returns the full URI path.
func (u S3Uri) String() string {
	return u.path
}

// Scheme returns the URI scheme, always "s3://".
func (u S3Uri) Scheme() string {
	return Scheme
}

// Bucket returns the bucket component of the URI.
func (u S3Uri) Bucket() string {
	if m := patternBucket.FindStringSubmatch(u.path); m != nil {
		return m[1]
	}
	return ""
}

// Key returns the object key of the URI. Only single-segment keys are
// recognized; a URI with nested path segments yields an empty key.
func (u S3Uri) Key() string {
	if m := patternKey.FindStringSubmatch(u.path); m != nil {
		return m[1]
	}
	return ""
}

// Join joins a path segment onto the URI, inserting a separator unless
// the path already ends with one. It returns a new locator.
func (u S3Uri) Join(segment string) S3Uri {
	if strings.HasSuffix(u.path, delimiter) {
		return S3Uri{path: u.path + segment}
	}
	return S3Uri{path: u.path + delimiter + segment}
}

// Append concatenates a suffix onto the URI with no separator, e.g.
// turning "s3://b/object.bam" into "s3://b/object.bam.bai". It returns a
// new locator.
func (u S3Uri) Append(suffix string) S3Uri {
	return S3Uri{path: u.path + suffix}
}

// ObjectExists tests whether the URI references an object that exists.
func (u S3Uri) ObjectExists(ctx context.Context, checker ObjectChecker) (bool, error) {
	return checker.ObjectExists(ctx, u.Bucket(), u.Key())
}
