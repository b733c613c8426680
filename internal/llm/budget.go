package llm

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Budget cuts prompt input to a token limit using the cl100k encoding.
type Budget struct {
	enc       tokenizer.Codec
	maxTokens int
}

func NewBudget(maxTokens int) (*Budget, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &Budget{enc: enc, maxTokens: maxTokens}, nil
}

// Truncate returns text unchanged when it fits, else its first maxTokens tokens.
// A non-positive limit disables truncation.
func (b *Budget) Truncate(text string) (string, bool, error) {
	if b.maxTokens <= 0 {
		return text, false, nil
	}
	ids, _, err := b.enc.Encode(text)
	if err != nil {
		return "", false, fmt.Errorf("encode: %w", err)
	}
	if len(ids) <= b.maxTokens {
		return text, false, nil
	}
	out, err := b.enc.Decode(ids[:b.maxTokens])
	if err != nil {
		return "", false, fmt.Errorf("decode: %w", err)
	}
	return out, true, nil
}
