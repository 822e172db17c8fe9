package reason

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed reasons.json
var embeddedTexts []byte

// LoadTexts reads the reason list at path, or the built-in list when path is
// empty.
func LoadTexts(path string) ([]string, error) {
	raw, src := embeddedTexts, DefaultReasonFn
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgLoadTexts, path, err)
		}
		raw, src = b, path
	}

	var texts []string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadTexts, src, err)
	}
	kept := texts[:0]
	for _, t := range texts {
		if t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf(ErrMsgNoTexts, src)
	}
	return kept, nil
}
