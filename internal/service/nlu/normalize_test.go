package nlu

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t  ",
			expected: "",
		},
		{
			name:     "lowercases and strips punctuation",
			input:    "What's the TIME?",
			expected: "what s time",
		},
		{
			name:     "strips filler phrase and wake word",
			input:    "Hey Marvin, could you open the calculator please",
			expected: "open calculator",
		},
		{
			name:     "collapses repeated whitespace",
			input:    "weather   in    boston",
			expected: "weather in boston",
		},
		{
			name:     "keeps digits",
			input:    "set alarm for 10 minutes",
			expected: "set alarm for 10 minutes",
		},
		{
			name:     "filler-only input collapses to empty",
			input:    "um, okay... please?",
			expected: "",
		},
		{
			name:     "adjacent filler phrases",
			input:    "hey marvin can you please tell me the date",
			expected: "tell me date",
		},
		{
			name:     "phrase spliced together by a removal",
			input:    "could could you you open calculator",
			expected: "open calculator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer([]string{"jarvis"})

	inputs := []string{
		"Hey Jarvis, what's the weather in New York?",
		"could you please repeat that",
		"OPEN CALCULATOR NOW!!!",
		"could could you you open calculator",
		"would would you you could could you you help",
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeExtraFillers(t *testing.T) {
	n := NewNormalizer([]string{"computer", "if you will"})

	got := n.Normalize("Computer, open the terminal if you will")
	if got != "open terminal" {
		t.Errorf("got %q, want %q", got, "open terminal")
	}
}
