package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ong-backend/internal/apperr"
	"github.com/baharkarakas/ong-backend/internal/models"
)

func decodeBody(body string, patch bool) (models.ResourcePatch, error) {
	r := httptest.NewRequest(http.MethodPost, "/resources", strings.NewReader(body))
	schema := resourceSchema(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if patch {
		schema = schema.Optional()
	}
	var dst models.ResourcePatch
	err := decodeValid(httptest.NewRecorder(), r, schema, &dst)
	return dst, err
}

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		patch   bool
		wantMsg string
	}{
		{name: "empty", body: "", wantMsg: "Validation Failed: No body submitted"},
		{name: "whitespace", body: "  \n", wantMsg: "Validation Failed: No body submitted"},
		{name: "json null", body: "null", wantMsg: "Validation Failed: No body submitted"},
		{name: "array", body: "[1]", wantMsg: "Validation Failed: malformed JSON body"},
		{name: "trailing garbage", body: `{"name":"x"} {}`, wantMsg: "Validation Failed: malformed JSON body"},
		{name: "fractional year", body: `{"name":"x","description":"d","createdYear":1999.5}`, wantMsg: "Validation Failed: createdYear: must be an integer number"},
		{name: "year too late", body: `{"name":"x","description":"d","createdYear":2025}`, wantMsg: "Validation Failed: createdYear: must not be greater than 2024"},
		{name: "negative year", body: `{"name":"x","description":"d","createdYear":-1}`, wantMsg: "Validation Failed: createdYear: must not be less than 0"},
		{name: "patch null name", body: `{"name":null}`, patch: true, wantMsg: "Validation Failed: name: should not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBody(tt.body, tt.patch)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestDecodeValid_PatchKeepsOnlySubmittedFields(t *testing.T) {
	p, err := decodeBody(`{"createdYear":2000}`, true)
	require.NoError(t, err)
	require.NotNil(t, p.CreatedYear)
	assert.Equal(t, 2000, *p.CreatedYear)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Description)
}
