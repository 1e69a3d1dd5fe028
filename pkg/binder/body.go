package binder

import (
	"fmt"
	"io"
	"net/http"
)

// Bytes reads the raw request body.
func Bytes(r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return b, nil
}

// Text reads the request body as a string. Used for the text-like body
// kinds (plain text, HTML, XML, JavaScript), which impose no content-type
// requirement.
func Text(r *http.Request) (string, error) {
	b, err := Bytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
