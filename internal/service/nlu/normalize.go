package nlu

import "strings"

// defaultFillers mirrors the words people pad voice commands with. Multi-word
// entries are stripped as phrases before single tokens.
var defaultFillers = []string{
	"could you", "would you", "can you",
	"please", "hey", "marvin", "ok", "okay", "so", "um", "uh",
	"the", "a", "an",
}

// Normalizer lowercases, strips punctuation and filler words, and collapses
// whitespace. Normalize is pure, total and idempotent.
type Normalizer struct {
	phrases []string
	words   map[string]struct{}
}

// NewNormalizer builds a normalizer from the default filler list plus any
// extra fillers (e.g. a custom wake word) from configuration.
func NewNormalizer(extraFillers []string) *Normalizer {
	n := &Normalizer{
		words: make(map[string]struct{}),
	}
	for _, f := range append(append([]string{}, defaultFillers...), extraFillers...) {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if strings.Contains(f, " ") {
			n.phrases = append(n.phrases, f)
		} else {
			n.words[f] = struct{}{}
		}
	}
	return n
}

func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)

	// Punctuation becomes whitespace so "what's" splits cleanly.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	tokens := strings.Fields(n.stripPhrases(b.String()))
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, filler := n.words[tok]; !filler {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// stripPhrases removes filler phrases from text until none remain. Removing
// one occurrence can splice another together ("could could you you" leaves
// "could you" after a single pass), so the pass repeats to a fixpoint. Each
// pass only shrinks the text, so the loop terminates.
func (n *Normalizer) stripPhrases(text string) string {
	text = " " + collapse(text) + " "
	for {
		before := text
		for _, p := range n.phrases {
			text = strings.ReplaceAll(text, " "+p+" ", " ")
		}
		if text == before {
			return collapse(text)
		}
	}
}

// IsFiller reports whether a single token would be stripped by Normalize.
func (n *Normalizer) IsFiller(token string) bool {
	_, ok := n.words[strings.ToLower(token)]
	return ok
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
