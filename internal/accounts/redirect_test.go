package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/auth/login/", LoginURL(""))
	assert.Equal(t, "/auth/login/?next=/create/", LoginURL("/create/"))
	assert.Equal(t, "/auth/login/?next=/posts/7/edit/", LoginURL("/posts/7/edit/"))
	assert.Equal(t, "/auth/login/?next=/group/cats/%3Fpage%3D2", LoginURL("/group/cats/?page=2"))
}

func TestSafeNext(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                      "/",
		"/create/":              "/create/",
		"/group/cats/?page=2":   "/group/cats/?page=2",
		"//evil.example/":       "/",
		`/\evil.example`:        "/",
		"https://evil.example/": "/",
		"create/":               "/",
		"javascript:alert(1)":   "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}
