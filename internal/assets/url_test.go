package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveImage(t *testing.T) {
	r := NewResolver("https://cdn.x")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty stays empty", "", ""},
		{"absolute http passes through", "http://other.host/a.png", "http://other.host/a.png"},
		{"absolute https passes through", "https://cdn.y/uploads/a.png", "https://cdn.y/uploads/a.png"},
		{"bare path gains uploads prefix", "foo/bar.png", "https://cdn.x/uploads/foo/bar.png"},
		{"leading slash stripped", "/uploads/a.png", "https://cdn.x/uploads/a.png"},
		{"uploads segment not doubled", "uploads/a.png", "https://cdn.x/uploads/a.png"},
		{"nested uploads segment recognized", "media/uploads/a.png", "https://cdn.x/media/uploads/a.png"},
		{"plain filename", "a.png", "https://cdn.x/uploads/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveImage(tt.value))
		})
	}
}

func TestNewResolver_TrimsTrailingSlash(t *testing.T) {
	r := NewResolver("https://cdn.x/")
	assert.Equal(t, "https://cdn.x/uploads/a.png", r.ResolveImage("a.png"))
}
