// internal/cloud/aws/store_test.go
package aws

import (
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestIsMissingObjectNoSuchKey(t *testing.T) {
	err := fmt.Errorf("operation error S3: GetObject: %w", &s3types.NoSuchKey{})
	if !isMissingObject(err) {
		t.Error("NoSuchKey should classify as a missing object")
	}
}

func TestIsMissingObjectGenericNotFound(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
	if !isMissingObject(err) {
		t.Error("NotFound API error should classify as a missing object")
	}
}

func TestIsMissingObjectDoesNotSwallowOtherFailures(t *testing.T) {
	cases := []error{
		&smithy.GenericAPIError{Code: "AccessDenied", Message: "access denied"},
		&smithy.GenericAPIError{Code: "SlowDown", Message: "rate exceeded"},
		errors.New("dial tcp: connection refused"),
	}
	for _, err := range cases {
		if isMissingObject(err) {
			t.Errorf("%v must not classify as a missing object", err)
		}
	}
}
