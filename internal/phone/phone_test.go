package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/sms-messaging/internal/phone"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "ten digits", input: "5551234567", want: "+15551234567"},
		{name: "ten digits formatted", input: "(555) 123-4567", want: "+15551234567"},
		{name: "eleven digits with leading one", input: "15551234567", want: "+15551234567"},
		{name: "eleven digits dotted", input: "1.555.123.4567", want: "+15551234567"},
		{name: "already e164", input: "+15551234567", want: "+15551234567"},
		{name: "e164 with spaces", input: " +1 555 123 4567 ", want: "+15551234567"},
		{name: "international e164", input: "+447911123456", want: "+447911123456"},
		{name: "eleven digits not starting with one", input: "25551234567", wantErr: true},
		{name: "too short", input: "555123", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters only", input: "not a phone", wantErr: true},
		{name: "plus followed by zero", input: "+05551234567", wantErr: true},
		{name: "plus with too many digits", input: "+1234567890123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := phone.Normalize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, phone.ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, phone.IsValidE164(got))
		})
	}
}

func TestNormalize_SameNumberCollapsesToOneIdentity(t *testing.T) {
	forms := []string{"2065550100", "12065550100", "+12065550100", "(206) 555-0100", "+1 (206) 555-0100"}

	var first string
	for i, f := range forms {
		got, err := phone.Normalize(f)
		require.NoError(t, err, f)
		if i == 0 {
			first = got
			continue
		}
		assert.Equal(t, first, got, f)
	}

	again, err := phone.Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestEqual(t *testing.T) {
	assert.True(t, phone.Equal("206-555-0100", "+12065550100"))
	assert.False(t, phone.Equal("206-555-0100", "206-555-0101"))
	assert.False(t, phone.Equal("garbage", "garbage"))
}

func TestSearchDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"555-123", "555123"},
		{"(555) 123", "555123"},
		{"+1 555.123", "1555123"},
		{"order 2", ""},
		{"pizza", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, phone.SearchDigits(tt.in))
		})
	}
}
