package allegro

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oczkers/gollegro/pkg/soap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want faultKind
	}{
		{
			name: "transport failure",
			err:  fmt.Errorf("%w: connection reset", soap.ErrTransport),
			want: kindTransport,
		},
		{
			name: "session expired",
			err:  &soap.Fault{Code: "ERR_SESSION_EXPIRED"},
			want: kindSessionExpired,
		},
		{
			name: "no session",
			err:  &soap.Fault{Code: "ERR_NO_SESSION"},
			want: kindSessionExpired,
		},
		{
			name: "internal system error",
			err:  &soap.Fault{Code: "ERR_INTERNAL_SYSTEM_ERROR"},
			want: kindServerError,
		},
		{
			name: "other fault",
			err:  &soap.Fault{Code: "ERR_WEBAPI_KEY"},
			want: kindUnclassified,
		},
		{
			name: "wrapped fault",
			err:  fmt.Errorf("calling: %w", &soap.Fault{Code: "ERR_SESSION_EXPIRED"}),
			want: kindSessionExpired,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: kindUnclassified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}
