package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswer(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"complete value", `{"answer": "Three years.", "text_citations": []}`, "Three years.", true},
		{"unterminated value", `{"answer": "Three ye`, "Three ye", true},
		{"escaped quote", `{"answer": "He said \"no\".", "text`, `He said "no".`, true},
		{"half escape at cut", `{"answer": "trailing\`, "trailing", true},
		{"newline escape", `{"answer": "line1\nline2"`, "line1\nline2", true},
		{"no answer key", `{"text_citations": ["r1"]}`, "", false},
		{"key but no value yet", `{"answer"`, "", false},
		{"non-string value", `{"answer": null}`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractAnswer(tc.input)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCompletionStructured(t *testing.T) {
	resp := parseCompletion(`{"answer": "Yes.", "text_citations": ["r1", "r2"], "image_citations": []}`)
	require.NotNil(t, resp.Answer)
	assert.Equal(t, "Yes.", *resp.Answer)
	assert.Equal(t, []string{"r1", "r2"}, resp.TextCitations)
	assert.Empty(t, resp.ImageCitations)
}

func TestParseCompletionCodeFence(t *testing.T) {
	resp := parseCompletion("```json\n{\"answer\": \"Fenced.\", \"text_citations\": [\"r1\"], \"image_citations\": []}\n```")
	require.NotNil(t, resp.Answer)
	assert.Equal(t, "Fenced.", *resp.Answer)
	assert.Equal(t, []string{"r1"}, resp.TextCitations)
}

func TestParseCompletionPlainTextFallback(t *testing.T) {
	resp := parseCompletion("The deadline passed in 2023.")
	require.NotNil(t, resp.Answer)
	assert.Equal(t, "The deadline passed in 2023.", *resp.Answer)
	assert.Empty(t, resp.TextCitations)
	assert.Empty(t, resp.ImageCitations)
}
