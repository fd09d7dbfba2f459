package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no such key", &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}, true},
		{"head not found", fmt.Errorf("get: %w", &smithy.GenericAPIError{Code: "NotFound"}), true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain", errors.New("timeout"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsNotFound(c.err); got != c.want {
				t.Fatalf("IsNotFound(%v) = %v; want %v", c.err, got, c.want)
			}
		})
	}
}
