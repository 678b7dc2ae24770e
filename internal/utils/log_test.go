package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  `{"id": 1}`,
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  `{"id": 1}`,
			limit:  20,
			expect: `{"id": 1}`,
		},
		{
			name:   "truncates and adds ellipsis",
			input:  `{"errors": [{"type": "server"}]}`,
			limit:  10,
			expect: `{"errors":...`,
		},
		{
			name:   "collapses multiline bodies",
			input:  "{\n  \"id\": 1,\n  \"name\": \"New\"\n}\n",
			limit:  100,
			expect: `{ "id": 1, "name": "New" }`,
		},
		{
			name:   "counts runes not bytes",
			input:  "Иванов Иван",
			limit:  6,
			expect: "Иванов...",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
