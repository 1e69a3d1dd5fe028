package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// Form creates a binder for application/x-www-form-urlencoded bodies, using
// `form` struct tags to map fields.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := requireMediaType(r, "application/x-www-form-urlencoded"); err != nil {
			return err
		}
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}

// FormValues parses the urlencoded body and returns the raw field map. Used
// when the caller declared no decode target.
func FormValues(r *http.Request) (map[string][]string, error) {
	if err := requireMediaType(r, "application/x-www-form-urlencoded"); err != nil {
		return nil, err
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return r.PostForm, nil
}

// requireMediaType checks the request content type against the expected
// media type, ignoring parameters such as charset.
func requireMediaType(r *http.Request, want string) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return fmt.Errorf("%w: expected %s", ErrMissingContentType, want)
	}
	media := ct
	if idx := strings.Index(ct, ";"); idx != -1 {
		media = strings.TrimSpace(ct[:idx])
	}
	if media != want {
		return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, media, want)
	}
	return nil
}
