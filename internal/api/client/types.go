package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DocID is the opaque document identifier. The server may send it as a JSON
// string or a number; either way it is kept as its textual form.
type DocID string

func (d *DocID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DocID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("doc_id must be a string or number: %w", err)
	}
	*d = DocID(n.String())
	return nil
}

func (d DocID) String() string {
	return string(d)
}

type UploadResponse struct {
	Filename string `json:"filename"`
	DocID    DocID  `json:"doc_id"`
	Error    string `json:"error"`
}

type AskResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// hasPayload reports whether any field the caller can act on was present.
func (r *UploadResponse) hasPayload() bool {
	return r.Error != "" || r.Filename != "" || r.DocID != ""
}

func (r *AskResponse) hasPayload() bool {
	return r.Error != "" || r.Response != ""
}
