package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/irevlogix/irevlogix-console/internal/platform/httpx"
)

// Acknowledgment is emitted for Acknowledge routes when upstream answers with
// an empty success body.
var Acknowledgment = []byte(`{"success":true,"message":"Operation completed successfully"}`)

type translation struct {
	status     int
	body       []byte
	totalCount string
}

func (t translation) emit(w http.ResponseWriter) {
	if t.totalCount != "" {
		w.Header().Set(HeaderTotalCount, t.totalCount)
	}
	if t.body == nil {
		w.WriteHeader(t.status)
		return
	}
	httpx.RawJSON(w, t.status, t.body)
}

// translate applies a WrapError or NormalizeShape policy to resp.
func translate(resp *http.Response, route Route) (translation, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return translation{}, fmt.Errorf("%w: read upstream body: %v", httpx.ErrTranslation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := wrapError(resp, raw)
		if err != nil {
			return translation{}, err
		}
		return translation{status: resp.StatusCode, body: body}, nil
	}

	if resp.StatusCode == http.StatusNoContent {
		return translation{status: http.StatusNoContent}, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if route.Acknowledge {
			return translation{status: resp.StatusCode, body: Acknowledgment}, nil
		}
		return translation{status: http.StatusNoContent}, nil
	}

	out := translation{status: resp.StatusCode, totalCount: resp.Header.Get(HeaderTotalCount)}
	if mapping, ok := route.Policy.Mapping(); ok {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return translation{}, fmt.Errorf("%w: decode upstream body: %v", httpx.ErrTranslation, err)
		}
		normalized, err := mapping.Apply(doc)
		if err != nil {
			return translation{}, fmt.Errorf("%w: %v", httpx.ErrTranslation, err)
		}
		if out.body, err = json.Marshal(normalized); err != nil {
			return translation{}, fmt.Errorf("%w: encode normalized body: %v", httpx.ErrTranslation, err)
		}
		return out, nil
	}
	if !json.Valid(raw) {
		return translation{}, fmt.Errorf("%w: upstream body is not JSON", httpx.ErrTranslation)
	}
	out.body = raw
	return out, nil
}

// wrapError builds {"error": <upstream body>}. JSON bodies are embedded as
// documents, anything else as text, including bodies mislabelled as JSON.
func wrapError(resp *http.Response, raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	var detail any
	switch {
	case isJSON(resp.Header.Get("Content-Type")) && json.Valid(trimmed):
		detail = json.RawMessage(trimmed)
	case len(trimmed) == 0:
		detail = http.StatusText(resp.StatusCode)
	default:
		detail = string(trimmed)
	}
	body, err := json.Marshal(httpx.ErrorBody{Error: detail})
	if err != nil {
		return nil, fmt.Errorf("%w: encode error body: %v", httpx.ErrTranslation, err)
	}
	return body, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
