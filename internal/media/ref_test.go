package media

import (
	"errors"
	"testing"
)

func TestExtractIDRecognizedShapes(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"schemeless watch", "watch?v=AAAAAAAAAAA", "AAAAAAAAAAA"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"schemeless short link", "youtu.be/BBBBBBBBBBB", "BBBBBBBBBBB"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v url", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractID(tc.ref)
			if err != nil {
				t.Fatalf("ExtractID(%q) failed: %v", tc.ref, err)
			}
			if got != tc.want {
				t.Fatalf("ExtractID(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

func TestExtractIDRejectsUnrecognized(t *testing.T) {
	cases := []struct {
		name string
		ref  string
	}{
		{"empty", ""},
		{"plain text", "not a video"},
		{"wrong id length", "short"},
		{"wrong id charset", "dQw4w9WgXc!"},
		{"unrelated url", "https://example.com/watch?x=1"},
		{"watch without v", "https://www.youtube.com/watch"},
		{"embed without id", "https://www.youtube.com/embed/"},
		{"shortlink without id", "https://youtu.be/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ExtractID(tc.ref); !errors.Is(err, ErrInvalidReference) {
				t.Fatalf("ExtractID(%q) = %v, want ErrInvalidReference", tc.ref, err)
			}
		})
	}
}
