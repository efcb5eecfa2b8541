package utils

import (
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"city": "Kraków", "bedrooms": 3}`,
			want: map[string]interface{}{
				"city":     "Kraków",
				"bedrooms": float64(3),
			},
			wantErr: false,
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"city": "Warszawa", "price_max": 600000}` + "\n```",
			want: map[string]interface{}{
				"city":      "Warszawa",
				"price_max": float64(600000),
			},
			wantErr: false,
		},
		{
			name:  "JSON with surrounding prose",
			input: `Here are your filters: {"status": "success", "count": 5} hope that helps.`,
			want: map[string]interface{}{
				"status": "success",
				"count":  float64(5),
			},
			wantErr: false,
		},
		{
			name:  "JSON with trailing comma",
			input: `{"city": "Gdańsk", "bedrooms": 2,}`,
			want: map[string]interface{}{
				"city":     "Gdańsk",
				"bedrooms": float64(2),
			},
			wantErr: false,
		},
		{
			name:    "Empty string",
			input:   "",
			want:    nil,
			wantErr: true,
		},
		{
			name:    "No JSON at all",
			input:   "sorry, I cannot help with that",
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if len(got) != len(tt.want) {
					t.Errorf("ParseAIJSON() got = %v, want %v", got, tt.want)
				}
				for k, want := range tt.want {
					if got[k] != want {
						t.Errorf("ParseAIJSON() key %s = %v, want %v", k, got[k], want)
					}
				}
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "Nested objects",
			input: `{"a": {"b": 2}}`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "Object with string containing braces",
			input: `{"text": "Hello {world}"}`,
			want:  `{"text": "Hello {world}"}`,
		},
		{
			name:  "Object surrounded by prose",
			input: `The result is {"a": 1} as requested.`,
			want:  `{"a": 1}`,
		},
		{
			name:  "Unbalanced object",
			input: `{"a": 1`,
			want:  "",
		},
		{
			name:  "No object",
			input: `plain text`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONObject(tt.input)
			if got != tt.want {
				t.Errorf("ExtractJSONObject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractFromMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "JSON code block with json tag",
			input: "```json\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "JSON code block without tag",
			input: "```\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "No code block",
			input: `{"test": true}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFromMarkdown(tt.input)
			if got != tt.want {
				t.Errorf("extractFromMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kraków", "Kraków"},
		{"WARSZAWA", "Warszawa"},
		{"łódź", "Łódź"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.input); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
