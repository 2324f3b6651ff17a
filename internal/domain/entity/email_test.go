package entity

import (
	"testing"

	domainerrors "gamestore/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailAddress(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain address", raw: "ann@example.com", want: "ann@example.com"},
		{name: "casing is canonicalized", raw: "Ann@Example.COM", want: "ann@example.com"},
		{name: "surrounding spaces are trimmed", raw: "  ann@example.com  ", want: "ann@example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "only spaces", raw: "   ", wantErr: true},
		{name: "missing at sign", raw: "ann.example.com", wantErr: true},
		{name: "missing domain", raw: "ann@", wantErr: true},
		{name: "display name form rejected", raw: "Ann <ann@example.com>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmailAddress(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidEmail))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, email.String())
		})
	}
}

func TestEmailAddress_Equals(t *testing.T) {
	a, err := NewEmailAddress("Ann@Example.com")
	require.NoError(t, err)
	b, err := NewEmailAddress("ann@example.com")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.IsZero())
	assert.True(t, EmailAddress{}.IsZero())
}
