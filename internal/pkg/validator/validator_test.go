package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("trader@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("no-at-sign.com"))
	assert.False(t, IsValidEmail("trader@localhost"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://res.cloudinary.com/demo/image/upload/sample.png"))
	assert.True(t, IsValidURL("http://example.com"))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("   "))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Tr4de!Hub"))
	assert.False(t, IsStrongPassword("Sh0rt!"))
	assert.False(t, IsStrongPassword("alllowercase1!"))
	assert.False(t, IsStrongPassword("NoDigits!!"))
	assert.False(t, IsStrongPassword("NoSpecial123"))
}
