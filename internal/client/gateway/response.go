package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxErrorMessage = 512

// Response is the raw answer of the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil for 2xx and *ApplicationError otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &ApplicationError{Status: r.StatusCode, Message: bodyMessage(r.Body)}
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func bodyMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) <= maxErrorMessage {
		return msg
	}
	msg = strings.ToValidUTF8(msg, "")
	if len(msg) <= maxErrorMessage {
		return msg
	}
	msg = msg[:maxErrorMessage]
	for len(msg) > 0 && !utf8.ValidString(msg) {
		msg = msg[:len(msg)-1]
	}
	return msg + "…"
}
