package validate

import (
	"strings"
	"testing"

	domainerrors "passport/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegistration_Ordering(t *testing.T) {
	val := New()

	tests := []struct {
		name    string
		in      [2]string // name, email
		wantErr error
	}{
		{"both missing reports name first", [2]string{"", ""}, domainerrors.ErrMissingName},
		{"bad name and bad email reports name first", [2]string{strings.Repeat("x", 17), "nope"}, domainerrors.ErrIllegalName},
		{"missing email after valid name", [2]string{"alice", ""}, domainerrors.ErrMissingEmail},
		{"illegal email after valid name", [2]string{"alice", "not-an-email"}, domainerrors.ErrIllegalEmail},
		{"valid", [2]string{"alice", "alice@example.com"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := val.Registration(tt.in[0], tt.in[1])
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestName_Boundaries(t *testing.T) {
	val := New()

	assert.NoError(t, val.Name("x", true))
	assert.NoError(t, val.Name(strings.Repeat("x", 16), true))
	assert.ErrorIs(t, val.Name(strings.Repeat("x", 17), true), domainerrors.ErrIllegalName)
	assert.ErrorIs(t, val.Name("", true), domainerrors.ErrMissingName)
	// In a patch the name is supplied, so emptiness is a format failure.
	assert.ErrorIs(t, val.Name("", false), domainerrors.ErrIllegalName)
}

func TestEmail_Forms(t *testing.T) {
	val := New()

	assert.NoError(t, val.Email("alice@example.com", true))
	assert.NoError(t, val.Email("a.b+c@sub.example.co", true))
	assert.ErrorIs(t, val.Email("", true), domainerrors.ErrMissingEmail)
	assert.ErrorIs(t, val.Email("", false), domainerrors.ErrIllegalEmail)
	assert.ErrorIs(t, val.Email("plainstring", true), domainerrors.ErrIllegalEmail)
	assert.ErrorIs(t, val.Email("missing-domain@", true), domainerrors.ErrIllegalEmail)
	// A domain without a dot is rejected even though it parses as an address.
	assert.ErrorIs(t, val.Email("alice@localhost", true), domainerrors.ErrIllegalEmail)
}

func TestPassword_Rules(t *testing.T) {
	val := New()

	assert.NoError(t, val.Password("abc123"))
	assert.NoError(t, val.Password("secret"))
	assert.ErrorIs(t, val.Password("abc12"), domainerrors.ErrInvalidPassword)
	assert.ErrorIs(t, val.Password(""), domainerrors.ErrInvalidPassword)
	// Long but digits-only still fails.
	assert.ErrorIs(t, val.Password("123456789"), domainerrors.ErrInvalidPassword)
}

func TestID_Format(t *testing.T) {
	val := New()

	wellFormed := primitive.NewObjectID()
	id, err := val.ID(wellFormed.Hex())
	require.NoError(t, err)
	assert.Equal(t, wellFormed, id)

	for _, bad := range []string{"", "zzz", "123", strings.Repeat("g", 24), wellFormed.Hex() + "ff"} {
		_, err := val.ID(bad)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidID, "id %q", bad)
	}
}
