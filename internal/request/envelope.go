package request

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Response is a received HTTP reply with its body fully read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// UnwrapEnvelope normalizes envelope replies. A boolean success=true yields the
// inner data, success=false fails with an APIError carrying the server message
// (or fallback). Bodies without a boolean success field pass through unchanged.
func UnwrapEnvelope(fallback string) ResponseStage {
	return func(resp *Response) (*Response, error) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(resp.Body, &fields); err != nil {
			return resp, nil
		}

		rawSuccess, ok := fields["success"]
		if !ok {
			return resp, nil
		}
		var success bool
		switch string(bytes.TrimSpace(rawSuccess)) {
		case "true":
			success = true
		case "false":
			success = false
		default:
			// null, strings and numbers are not a boolean flag
			return resp, nil
		}

		if !success {
			message := envelopeMessage(fields["message"])
			if message == "" {
				message = fallback
			}
			return nil, &APIError{Message: message, Body: resp.Body}
		}

		data, ok := fields["data"]
		if !ok {
			data = json.RawMessage("null")
		}

		unwrapped := *resp
		unwrapped.Body = data
		return &unwrapped, nil
	}
}

// envelopeMessage returns the message to show for a failed envelope. Strings
// are shown as is, other non-empty values as their JSON text; null, false,
// zero and "" yield "".
func envelopeMessage(raw json.RawMessage) string {
	text := string(bytes.TrimSpace(raw))
	switch text {
	case "", "null", "false", `""`:
		return ""
	}

	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return message
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil && number == 0 {
		return ""
	}
	return text
}
