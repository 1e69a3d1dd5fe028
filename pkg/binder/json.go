package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON creates a strict JSON body binder. The request must carry an
// application/json content type; unknown fields and trailing data after the
// top-level value are rejected.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := requireMediaType(r, "application/json"); err != nil {
			return err
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		// Reject trailing garbage after the decoded value.
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}
		return nil
	}
}
