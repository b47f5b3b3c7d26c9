package storage

import (
	"strings"
	"testing"
)

func TestAllowedContentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{" image/jpeg ", true},
		{"image/gif", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := AllowedContentType(tc.contentType); got != tc.want {
			t.Errorf("AllowedContentType(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
}

func TestNewObjectName(t *testing.T) {
	name := NewObjectName("My Photo.JPG")

	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("expected lowercased extension to be kept, got %q", name)
	}

	if strings.Contains(name, "My Photo") {
		t.Fatalf("original name must not leak into the object name, got %q", name)
	}

	if name == NewObjectName("My Photo.JPG") {
		t.Fatal("object names must not collide for the same input")
	}
}
