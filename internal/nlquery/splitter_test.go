package nlquery

import (
	"reflect"
	"testing"
)

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single question is one segment",
			input:    "how many tvs in store?",
			expected: []string{"how many tvs in store?"},
		},
		{
			name:     "Two questions split at question mark",
			input:    "how many tvs? show all products",
			expected: []string{"how many tvs", "show all products"},
		},
		{
			name:     "Three questions",
			input:    "how many tvs? what products are available? list all products",
			expected: []string{"how many tvs", "what products are available", "list all products"},
		},
		{
			name:     "Question mark not followed by starter does not split",
			input:    "how many tvs? and phones",
			expected: []string{"how many tvs? and phones"},
		},
		{
			name:     "Starter must be a whole word",
			input:    "how many tvs? howdy partner",
			expected: []string{"how many tvs? howdy partner"},
		},
		{
			name:     "Split is case insensitive",
			input:    "how many tvs? SHOW all products",
			expected: []string{"how many tvs", "SHOW all products"},
		},
		{
			name:     "Can starts a segment",
			input:    "show all products? can you tell me how many phones",
			expected: []string{"show all products", "can you tell me how many phones"},
		},
		{
			name:     "Trailing question mark stays with last segment",
			input:    "how many tvs? what is available?",
			expected: []string{"how many tvs", "what is available?"},
		},
		{
			name:     "Whitespace between mark and starter",
			input:    "how many tvs?   \t list all products",
			expected: []string{"how many tvs", "list all products"},
		},
		{
			name:     "Segments are trimmed",
			input:    "  how many tvs  ",
			expected: []string{"how many tvs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSegments(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitSegments(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitSegmentsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if got := SplitSegments(input); len(got) != 0 {
			t.Errorf("SplitSegments(%q) = %v, want no segments", input, got)
		}
	}
}
