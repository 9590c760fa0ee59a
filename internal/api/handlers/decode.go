package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/baharkarakas/ong-backend/internal/api/validate"
	"github.com/baharkarakas/ong-backend/internal/apperr"
)

const maxBodyBytes = 1 << 20

var errMalformed = apperr.Validation("Validation Failed: malformed JSON body")

// decodeValid runs the body through schema and then decodes the same bytes
// into dst. An empty body is an empty payload.
func decodeValid(w http.ResponseWriter, r *http.Request, schema validate.Schema, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return errMalformed
	}

	payload := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil || dec.More() {
			return errMalformed
		}
	}
	if _, err := validate.Check(schema, payload); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errMalformed
	}
	return nil
}
