package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pw   string
		ok   bool
	}{
		{name: "valid", pw: "Str0ngPass!", ok: true},
		{name: "too short", pw: "Str0ng!", ok: false},
		{name: "no uppercase", pw: "str0ngpass!", ok: false},
		{name: "no lowercase", pw: "STR0NGPASS!", ok: false},
		{name: "no digit", pw: "StrongPass!", ok: false},
		{name: "no special", pw: "Str0ngPass1", ok: false},
		{name: "empty", pw: "", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.ok, AdminPassword(tt.pw))
		})
	}
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	assert.True(t, UserPassword("secret"))
	assert.False(t, UserPassword("short"))
	assert.False(t, UserPassword(""))
}

func TestStruct(t *testing.T) {
	t.Parallel()

	type login struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required"`
	}

	assert.NoError(t, Struct(login{Email: "a@b.com", Password: "x"}))
	assert.Error(t, Struct(login{Email: "not-an-email", Password: "x"}))
	assert.Error(t, Struct(login{}))
}
