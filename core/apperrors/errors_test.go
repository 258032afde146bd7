package apperrors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationClassification(t *testing.T) {
	cause := errors.New("input object missing")
	err := Validation("definition foo:0 failed validation", cause)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "definition foo:0 failed validation")
	assert.Contains(t, err.Error(), "input object missing")
}

func TestSubmissionStateClassification(t *testing.T) {
	err := SubmissionState("batch.Submit", "cannot submit an already submitted job")

	assert.True(t, errors.Is(err, ErrSubmissionState))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "batch.Submit", appErr.Op)
}

func TestSubmissionFailedCarriesReply(t *testing.T) {
	reply := map[string]int{"HTTPStatusCode": 500}
	err := SubmissionFailed("batch.Submit", reply, nil)

	assert.True(t, errors.Is(err, ErrSubmissionFailed))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, reply, appErr.Reply)
}

func TestNotFound(t *testing.T) {
	err := NotFound("log stream", "job-1")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "log stream job-1 not found", err.Error())

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "log stream", appErr.Resource)
}

func TestTimeout(t *testing.T) {
	err := Timeout("logs.Tail", 50*time.Millisecond)

	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "logs.Tail")
	assert.Contains(t, err.Error(), "50ms")
}
