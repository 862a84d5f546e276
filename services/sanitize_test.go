package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">Texte <strong>important</strong></p><script>alert(1)</script>`)

	assert.Equal(t, "<p>Texte <strong>important</strong></p>", out)
}

func TestDocumentHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty",
			content:  "  \n ",
			expected: "",
		},
		{
			name:     "Plain text paragraphs",
			content:  "Article 1\nPremière ligne\n\nArticle 2",
			expected: "<p>Article 1<br>Première ligne</p><p>Article 2</p>",
		},
		{
			name:     "Plain text is escaped",
			content:  "3 < 5 & 5 > 3",
			expected: "<p>3 &lt; 5 &amp; 5 &gt; 3</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DocumentHTML(tt.content))
		})
	}
}

func TestDocumentHTMLSanitizesMarkup(t *testing.T) {
	out := DocumentHTML(`<h2>Données</h2><img src="/logo.png" onerror="steal()">`)

	assert.Contains(t, out, "<h2>Données</h2>")
	assert.Contains(t, out, `src="/logo.png"`)
	assert.NotContains(t, out, "onerror")
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML("<p>x</p>"))
	assert.True(t, looksLikeHTML("a < b </div>"))
	assert.False(t, looksLikeHTML("a < b"))
	assert.False(t, looksLikeHTML("trailing <"))
}
