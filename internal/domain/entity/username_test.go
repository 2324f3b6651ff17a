package entity

import (
	"strings"
	"testing"

	domainerrors "gamestore/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsername(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "simple handle", raw: "ann_99", want: "ann_99"},
		{name: "mixed case keeps display form", raw: "Ann_99", want: "Ann_99"},
		{name: "dots and hyphens allowed", raw: "ann.b-c", want: "ann.b-c"},
		{name: "surrounding spaces trimmed", raw: "  ann_99  ", want: "ann_99"},
		{name: "empty", raw: "", wantErr: true},
		{name: "too short", raw: "ab", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 31), wantErr: true},
		{name: "inner space", raw: "ann b", wantErr: true},
		{name: "punctuation rejected", raw: "ann!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := NewUsername(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidUsername))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, username.String())
		})
	}
}

func TestUsername_NormalizedComparison(t *testing.T) {
	a, err := NewUsername("Ann_99")
	require.NoError(t, err)
	b, err := NewUsername("ann_99")
	require.NoError(t, err)

	assert.Equal(t, "ann_99", a.Normalized())
	assert.True(t, a.Equals(b))
	assert.Equal(t, "Ann_99", a.String())
}
