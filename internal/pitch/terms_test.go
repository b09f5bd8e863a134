package pitch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeyTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"only short words", "an app for you", []string{}},
		{"stopwords dropped", "This will help teams with their invoices", []string{"help", "teams", "invoices"}},
		{"punctuation trimmed", "Pottery, classes! (hosted)", []string{"pottery", "classes", "hosted"}},
		{"duplicates removed", "dogs dogs walking dogs walking", []string{"dogs", "walking"}},
		{"capped at five", "alpha bravo charlie delta echoes foxtrot", []string{"alpha", "bravo", "charlie", "delta", "echoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractKeyTerms(tt.text))
		})
	}
}

func TestExtractKeyTermsIdempotent(t *testing.T) {
	for _, text := range corpus {
		first := ExtractKeyTerms(text)
		require.Equal(t, first, ExtractKeyTerms(text), text)
		require.LessOrEqual(t, len(first), MaxKeyTerms, text)
	}
}

func TestTitleWord(t *testing.T) {
	require.Equal(t, "Pottery", titleWord("pottery"))
	require.Equal(t, "Aipowered", titleWord("ai-powered"))
	require.Equal(t, "", titleWord("!!"))
}
