package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocIDUnmarshal(t *testing.T) {
	tests := []struct {
		body string
		want DocID
	}{
		{body: `{"doc_id": 42}`, want: "42"},
		{body: `{"doc_id": "42"}`, want: "42"},
		{body: `{"doc_id": "a1b2-c3"}`, want: "a1b2-c3"},
		{body: `{"doc_id": null}`, want: ""},
		{body: `{}`, want: ""},
	}

	for _, tt := range tests {
		var resp UploadResponse
		require.NoError(t, json.Unmarshal([]byte(tt.body), &resp), tt.body)
		assert.Equal(t, tt.want, resp.DocID, tt.body)
	}
}

func TestDocIDUnmarshalRejectsOtherTypes(t *testing.T) {
	var resp UploadResponse
	assert.Error(t, json.Unmarshal([]byte(`{"doc_id": true}`), &resp))
	assert.Error(t, json.Unmarshal([]byte(`{"doc_id": [1]}`), &resp))
}

func TestHasPayload(t *testing.T) {
	assert.False(t, (&AskResponse{}).hasPayload())
	assert.True(t, (&AskResponse{Error: "x"}).hasPayload())
	assert.True(t, (&UploadResponse{DocID: "1"}).hasPayload())
	assert.False(t, (&UploadResponse{}).hasPayload())
}
