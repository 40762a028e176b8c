package ta7wila

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorMessage_Priority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "plain string body wins over everything",
			body: `"insufficient balance"`,
			want: "insufficient balance",
		},
		{
			name: "errorMessage wins over message",
			body: `{"errorMessage":"X","message":"Y"}`,
			want: "X",
		},
		{
			name: "message used when errorMessage absent",
			body: `{"message":"store not found","result":{"a":"z"}}`,
			want: "store not found",
		},
		{
			name: "nested error message",
			body: `{"success":false,"error":{"type":"validation","message":"amount must be greater than zero"}}`,
			want: "amount must be greater than zero",
		},
		{
			name: "result values joined in key order",
			body: `{"result":{"amount":"amount is required","sender":"invalid mobile number"}}`,
			want: "amount is required, invalid mobile number",
		},
		{
			name: "unrecognized shape falls back",
			body: `{"code":42}`,
			want: FallbackErrorMessage,
		},
		{
			name: "empty body falls back",
			body: ``,
			want: FallbackErrorMessage,
		},
		{
			name: "malformed json falls back",
			body: `{not json`,
			want: FallbackErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeErrorMessage([]byte(tt.body)))
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	assert.Equal(t, "", DisplayMessage(nil))

	reqErr := &RequestError{Err: errors.New("dial tcp: connection refused")}
	assert.Equal(t, NoResponseMessage, DisplayMessage(reqErr))
	assert.True(t, IsNoResponse(reqErr))

	apiErr := &APIError{StatusCode: 409, Message: "an identical claim is already being processed"}
	assert.Equal(t, "an identical claim is already being processed", DisplayMessage(apiErr))
	assert.False(t, IsNoResponse(apiErr))

	plain := errors.New("unexpected eof")
	assert.Equal(t, "unexpected eof", DisplayMessage(plain))
}
