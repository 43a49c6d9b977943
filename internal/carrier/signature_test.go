package carrier_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/popeskul/sms-messaging/internal/carrier"
)

func TestValidateSignature(t *testing.T) {
	// Reference values from the carrier's request validation documentation.
	const (
		authToken = "12345"
		fullURL   = "https://mycompany.com/myapp.php?foo=1&bar=2"
	)
	params := url.Values{
		"CallSid": {"CA1234567890ABCDE"},
		"Caller":  {"+12349013030"},
		"Digits":  {"1234"},
		"From":    {"+12349013030"},
		"To":      {"+18005551212"},
	}

	signature := carrier.ComputeSignature(authToken, fullURL, params)
	assert.Equal(t, "0/KCTR6DLpKmkAf8muzZqo1nDgQ=", signature)

	tests := []struct {
		name      string
		token     string
		url       string
		signature string
		want      bool
	}{
		{name: "valid", token: authToken, url: fullURL, signature: signature, want: true},
		{name: "wrong token", token: "other", url: fullURL, signature: signature},
		{name: "wrong url", token: authToken, url: "https://mycompany.com/other", signature: signature},
		{name: "missing signature", token: authToken, url: fullURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.ValidateSignature(tt.token, tt.url, params, tt.signature))
		})
	}
}
