package aws

import (
	"batch-client/core/models"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
)

// responseMetadata extracts reply metadata from an operation result. The
// SDK surfaces non-2xx replies as errors, so a deserialized result always
// reads as 200.
func responseMetadata(md middleware.Metadata) *models.ResponseMetadata {
	meta := &models.ResponseMetadata{HTTPStatusCode: 200}
	if id, ok := awsmiddleware.GetRequestIDMetadata(md); ok {
		meta.RequestID = id
	}
	return meta
}
