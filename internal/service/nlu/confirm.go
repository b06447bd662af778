package nlu

import "strings"

var affirmatives = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "yup": {},
	"sure": {}, "confirmed": {}, "confirm": {}, "affirmative": {},
}

var negatives = map[string]struct{}{
	"no": {}, "nope": {}, "nah": {},
	"cancel": {}, "negative": {}, "dont": {},
}

// Affirmative reports whether normalized text reads as a yes.
func Affirmative(text string) bool {
	return containsAny(text, affirmatives)
}

// Negative reports whether normalized text reads as a no. "never mind" is
// accepted alongside single-token refusals.
func Negative(text string) bool {
	if strings.Contains(" "+text+" ", " never mind ") {
		return true
	}
	return containsAny(text, negatives)
}

func containsAny(text string, set map[string]struct{}) bool {
	for _, tok := range strings.Fields(text) {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}
