package media

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidReference marks a reference that could not be recognized.
// It is returned before any network I/O is attempted.
var ErrInvalidReference = errors.New("invalid media reference")

// idPattern matches a bare 11-character video identifier.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractID pulls the video identifier out of a media reference. It
// accepts a full watch URL, a shortened share URL, an embed URL, a /v/
// or /shorts/ URL, or a bare identifier. Anything else is rejected.
func ExtractID(reference string) (string, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", ErrInvalidReference
	}
	if idPattern.MatchString(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", ErrInvalidReference
	}
	if id := u.Query().Get("v"); idPattern.MatchString(id) {
		return id, nil
	}

	// Schemeless references like "youtu.be/<id>" parse with an empty
	// host; reparse with one so host checks work.
	if u.Host == "" && !strings.Contains(ref, "://") {
		if u, err = url.Parse("https://" + ref); err != nil {
			return "", ErrInvalidReference
		}
		if id := u.Query().Get("v"); idPattern.MatchString(id) {
			return id, nil
		}
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	if strings.EqualFold(u.Hostname(), "youtu.be") {
		if len(segments) > 0 && idPattern.MatchString(segments[0]) {
			return segments[0], nil
		}
		return "", ErrInvalidReference
	}

	for i, seg := range segments {
		switch seg {
		case "embed", "v", "shorts":
			if i+1 < len(segments) && idPattern.MatchString(segments[i+1]) {
				return segments[i+1], nil
			}
		}
	}

	return "", ErrInvalidReference
}
