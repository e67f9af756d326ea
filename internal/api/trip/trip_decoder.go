package trip

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/voyageRN-project/voyage/internal/types"
)

// Document is a decoded, not yet validated, response. Numbers stay json.Number.
type Document map[string]any

// DecodeResponse strictly decodes the generative response into a Document.
// Markdown fences and prose around the outermost object are dropped first.
// Any failure wraps types.ErrDecodeFailure.
func DecodeResponse(raw string) (Document, error) {
	body := trimToObject(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: no JSON object found", types.ErrDecodeFailure)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDecodeFailure, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", types.ErrDecodeFailure)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: null document", types.ErrDecodeFailure)
	}
	return doc, nil
}

func trimToObject(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// Raw re-encodes the document for storage.
func (d Document) Raw() (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
