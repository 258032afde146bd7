package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	exists bool
	err    error
	bucket string
	key    string
}

func (f *fakeChecker) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	f.bucket, f.key = bucket, key
	return f.exists, f.err
}

func TestParseS3Uri(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/key")
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/key", uri.String())
	assert.Equal(t, "s3://", uri.Scheme())
	assert.Equal(t, "bucket", uri.Bucket())
	assert.Equal(t, "key", uri.Key())
}

func TestParseS3UriRejectsMalformedScheme(t *testing.T) {
	for _, path := range []string{" s3://bucket/", "h3://bucket/", "s3:/bucket/"} {
		_, err := ParseS3Uri(path)
		assert.Error(t, err, "path %q should be rejected", path)
	}
}

func TestKeyOfTrailingSlashIsEmpty(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/")
	require.NoError(t, err)

	assert.Equal(t, "bucket", uri.Bucket())
	assert.Equal(t, "", uri.Key())
}

func TestKeyOfNestedPathIsEmpty(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/prefix/key")
	require.NoError(t, err)

	assert.Equal(t, "", uri.Key())
}

func TestJoin(t *testing.T) {
	base, err := ParseS3Uri("s3://bucket")
	require.NoError(t, err)

	joined := base.Join("x")
	want, err := ParseS3Uri("s3://bucket/x")
	require.NoError(t, err)

	assert.Equal(t, want, joined)
	// Join never mutates the receiver.
	assert.Equal(t, "s3://bucket", base.String())
}

func TestJoinOnTrailingSlash(t *testing.T) {
	base, err := ParseS3Uri("s3://bucket/prefix/")
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/prefix/x", base.Join("x").String())
}

func TestAppend(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/object.bam")
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/object.bam.bai", uri.Append(".bai").String())
	assert.Equal(t, "s3://bucket/object.bam", uri.String())
}

func TestObjectExists(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/key")
	require.NoError(t, err)

	checker := &fakeChecker{exists: true}
	exists, err := uri.ObjectExists(context.Background(), checker)
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, "bucket", checker.bucket)
	assert.Equal(t, "key", checker.key)
}

func TestObjectExistsNotFound(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/key")
	require.NoError(t, err)

	exists, err := uri.ObjectExists(context.Background(), &fakeChecker{exists: false})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestObjectExistsPropagatesFailure(t *testing.T) {
	uri, err := ParseS3Uri("s3://bucket/key")
	require.NoError(t, err)

	boom := errors.New("access denied")
	_, err = uri.ObjectExists(context.Background(), &fakeChecker{err: boom})
	assert.ErrorIs(t, err, boom)
}
