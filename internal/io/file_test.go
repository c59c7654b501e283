package ioutils

import "testing"

func TestReplaceExtension(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"/music/song.mp3", "jpg", "/music/song.jpg"},
		{"/music/song.mp3", ".png", "/music/song.png"},
		{"song", "jpg", "song.jpg"},
		{"/music/a.b/song", "jpg", "/music/a.b/song.jpg"},
		{"my.song.mp3", "jpg", "my.song.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ReplaceExtension(tt.path, tt.ext); got != tt.want {
				t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://f4.bcbits.com/img/a1_10.jpg", true},
		{"HTTP://example.com/cover.png", true},
		{"cover.jpg", false},
		{"/tmp/http/cover.jpg", false},
		{"ftp://example.com/cover.jpg", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
