package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseMissingMetadataFailsClosed(t *testing.T) {
	resp := NewResponse(nil, map[string]string{"jobName": "foo"})

	assert.Equal(t, 500, resp.HTTPCode())
	assert.False(t, resp.IsOK())
}

func TestResponseZeroStatusCodeFailsClosed(t *testing.T) {
	resp := NewResponse(&ResponseMetadata{RequestID: "req-1"}, nil)

	assert.Equal(t, 500, resp.HTTPCode())
	assert.False(t, resp.IsOK())
}

func TestResponseOK(t *testing.T) {
	resp := NewResponse(&ResponseMetadata{HTTPStatusCode: 200}, nil)

	assert.Equal(t, 200, resp.HTTPCode())
	assert.True(t, resp.IsOK())
}

func TestResponseNonOKStatus(t *testing.T) {
	resp := NewResponse(&ResponseMetadata{HTTPStatusCode: 403}, nil)

	assert.Equal(t, 403, resp.HTTPCode())
	assert.False(t, resp.IsOK())
}

func TestSubmitReplyCarriesJobIdentity(t *testing.T) {
	reply := SubmitReply{
		Response: NewResponse(&ResponseMetadata{HTTPStatusCode: 200}, nil),
		JobName:  "2018-02-23T12-13-38_foo",
		JobID:    "job-1",
	}

	assert.True(t, reply.IsOK())
	assert.Equal(t, "job-1", reply.JobID)
}
