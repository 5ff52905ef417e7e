package suggest

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

func loadCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// TokenCounts estimates the cl100k_base token count of each suggestion.
// The counts are advisory metadata for callers pasting prompts into an assistant.
func TokenCounts(suggestions []string) ([]int, error) {
	enc, err := loadCodec()
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	counts := make([]int, len(suggestions))
	for i, s := range suggestions {
		ids, _, err := enc.Encode(s)
		if err != nil {
			return nil, fmt.Errorf("encode suggestion %d: %w", i, err)
		}
		counts[i] = len(ids)
	}
	return counts, nil
}
