package nlu

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/marvin/internal/core"
)

// ErrMalformedPattern marks a structurally invalid catalog entry. It is
// fatal at load time; matching itself never fails.
var ErrMalformedPattern = errors.New("malformed pattern")

// Template is one trigger phrase for an intent. Text may contain named
// capture slots in angle brackets ("weather in <city>"). Keyword-only
// templates match on token presence, in any order unless Ordered is set.
// Set assigns fixed slot values when the template matches ("louder" sets
// direction=up without capturing anything).
type Template struct {
	Text    string            `json:"text"`
	Ordered bool              `json:"ordered,omitempty"`
	Set     map[string]string `json:"set,omitempty"`
}

// Pattern binds an intent to its trigger templates. Priority ranks patterns
// when several match; total matched keyword length breaks ties.
type Pattern struct {
	Intent    core.Intent `json:"intent"`
	Priority  int         `json:"priority"`
	Sensitive bool        `json:"sensitive,omitempty"`
	Templates []Template  `json:"templates"`
}

var slotNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type compiledTemplate struct {
	keywords []string       // unordered keyword match; nil when re is set
	re       *regexp.Regexp // slot capture or ordered match
	slots    []string
	set      map[string]string
	weight   int // total literal keyword length, for tie-breaking
}

type compiledPattern struct {
	intent    core.Intent
	priority  int
	sensitive bool
	templates []compiledTemplate
}

// compileTemplate turns template text into a matcher. Literal text goes
// through the normalizer's phrase and token filters so catalog authors can
// write "do the previous one" or "what can you do" and still match
// normalized input.
func compileTemplate(norm *Normalizer, t Template) (compiledTemplate, error) {
	ct := compiledTemplate{set: t.Set}

	text := strings.ToLower(strings.TrimSpace(t.Text))
	if text == "" {
		return ct, fmt.Errorf("%w: empty template text", ErrMalformedPattern)
	}

	parts, err := splitTemplate(text)
	if err != nil {
		return ct, err
	}

	hasSlot := false
	for _, p := range parts {
		if p.slot != "" {
			hasSlot = true
		}
	}

	if !hasSlot && !t.Ordered {
		// Unordered keyword containment.
		for _, p := range parts {
			for _, tok := range strings.Fields(norm.stripPhrases(p.literal)) {
				if norm.IsFiller(tok) {
					continue
				}
				ct.keywords = append(ct.keywords, tok)
				ct.weight += len(tok)
			}
		}
		if len(ct.keywords) == 0 {
			return ct, fmt.Errorf("%w: template %q has no keywords after filler removal", ErrMalformedPattern, t.Text)
		}
		return ct, nil
	}

	// Slotted or ordered templates compile to an anchored regexp.
	var b strings.Builder
	prevSlot := false
	literalSeen := false
	for i, p := range parts {
		if p.slot != "" {
			if prevSlot {
				return ct, fmt.Errorf("%w: template %q has adjacent slots", ErrMalformedPattern, t.Text)
			}
			for _, seen := range ct.slots {
				if seen == p.slot {
					return ct, fmt.Errorf("%w: template %q repeats slot %q", ErrMalformedPattern, t.Text, p.slot)
				}
			}
			ct.slots = append(ct.slots, p.slot)
			if i == len(parts)-1 {
				b.WriteString(`(?P<` + p.slot + `>.+)$`)
			} else {
				b.WriteString(`(?P<` + p.slot + `>.+?)`)
			}
			prevSlot = true
			continue
		}

		var words []string
		for _, tok := range strings.Fields(norm.stripPhrases(p.literal)) {
			if norm.IsFiller(tok) {
				continue
			}
			words = append(words, regexp.QuoteMeta(tok))
			ct.weight += len(tok)
		}
		if len(words) == 0 {
			continue
		}
		literalSeen = true
		if b.Len() > 0 {
			b.WriteString(`\s+`)
		}
		b.WriteString(`\b` + strings.Join(words, `\s+`) + `\b`)
		if i < len(parts)-1 && parts[i+1].slot != "" {
			b.WriteString(`\s+`)
		}
		prevSlot = false
	}

	if hasSlot && !literalSeen {
		return ct, fmt.Errorf("%w: template %q has no literal anchor for its slots", ErrMalformedPattern, t.Text)
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return ct, fmt.Errorf("%w: template %q: %v", ErrMalformedPattern, t.Text, err)
	}
	ct.re = re
	return ct, nil
}

type templatePart struct {
	literal string
	slot    string
}

func splitTemplate(text string) ([]templatePart, error) {
	var parts []templatePart
	for len(text) > 0 {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			parts = append(parts, templatePart{literal: text})
			break
		}
		if open > 0 {
			parts = append(parts, templatePart{literal: text[:open]})
		}
		closeIdx := strings.IndexByte(text[open:], '>')
		if closeIdx < 0 {
			return nil, fmt.Errorf("%w: unclosed slot in %q", ErrMalformedPattern, text)
		}
		name := text[open+1 : open+closeIdx]
		if !slotNameRe.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid slot name %q in %q", ErrMalformedPattern, name, text)
		}
		parts = append(parts, templatePart{slot: name})
		text = text[open+closeIdx+1:]
	}
	return parts, nil
}

// match tests the template against normalized text, returning captured slots
// and whether it matched.
func (ct compiledTemplate) match(text string) (map[string]string, bool) {
	if ct.re == nil {
		tokens := make(map[string]struct{})
		for _, tok := range strings.Fields(text) {
			tokens[tok] = struct{}{}
		}
		for _, kw := range ct.keywords {
			if _, ok := tokens[kw]; !ok {
				return nil, false
			}
		}
		return fixedSlots(ct.set), true
	}

	m := ct.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	slots := fixedSlots(ct.set)
	for i, name := range ct.re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		if slots == nil {
			slots = make(map[string]string)
		}
		slots[name] = collapse(m[i])
	}
	return slots, true
}

func fixedSlots(set map[string]string) map[string]string {
	if len(set) == 0 {
		return nil
	}
	slots := make(map[string]string, len(set))
	for k, v := range set {
		slots[k] = v
	}
	return slots
}
