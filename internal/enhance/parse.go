package enhance

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/model"
)

// ErrEmptyPayload means the provider returned JSON that parsed but carried
// no usable facts.
var ErrEmptyPayload = eris.New("enhancement payload is empty")

// parsePayload extracts the JSON object from a provider response. Models
// frequently wrap JSON in markdown fences or prose despite instructions,
// so the parser locates the outermost braces before unmarshalling. String
// and string-list values are kept; anything else is dropped rather than
// guessed at.
func parsePayload(raw string) (model.FactMap, error) {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.New("no JSON object in response")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &decoded); err != nil {
		return nil, eris.Wrap(err, "unmarshal enhancement payload")
	}

	out := make(model.FactMap, len(decoded))
	for k, v := range decoded {
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) != "" {
				out[k] = t
			}
		case []any:
			items := make([]any, 0, len(t))
			for _, item := range t {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					items = append(items, s)
				}
			}
			if len(items) > 0 {
				out[k] = items
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyPayload
	}
	return out, nil
}
