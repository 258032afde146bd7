package models

// DefaultHTTPCode is reported when a reply carries no status metadata.
// Missing metadata is treated as a failure, never as success.
const DefaultHTTPCode = 500

// ResponseMetadata holds the service-level metadata attached to a reply.
type ResponseMetadata struct {
	HTTPStatusCode int
	RequestID      string
}

// Response is a generic wrapper around a raw service reply.
type Response struct {
	Metadata *ResponseMetadata
	Raw      interface{}
}

// NewResponse wraps a raw reply with its metadata.
func NewResponse(meta *ResponseMetadata, raw interface{}) Response {
	return Response{Metadata: meta, Raw: raw}
}

// HTTPCode returns the HTTP status code of the reply, defaulting to 500
// when the reply carries no status metadata.
func (r Response) HTTPCode() int {
	if r.Metadata == nil || r.Metadata.HTTPStatusCode == 0 {
		return DefaultHTTPCode
	}
	return r.Metadata.HTTPStatusCode
}

// IsOK returns whether the reply was successful.
func (r Response) IsOK() bool {
	return r.HTTPCode() == 200
}

// SubmitReply is the service reply to a job submission.
type SubmitReply struct {
	Response
	JobName string
	JobID   string
}
