package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_RoundTripIsVerbatim(t *testing.T) {
	payload := []byte(`{"titre":"Conditions","contenu":"<p>Texte</p>","extra":[1,2,{"x":null}]}`)

	var doc Document
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.Equal(t, string(payload), string(doc))

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(out))
}

func TestDocument_RawJSON(t *testing.T) {
	doc := Document("{ \"contenu\": \"<p>Texte</p>\" }")
	assert.Equal(t, "{ \"contenu\": \"<p>Texte</p>\" }", string(doc.RawJSON()))
	assert.Equal(t, "null", string(Document(nil).RawJSON()))
}

func TestDocument_Fields(t *testing.T) {
	doc := Document(`{"title":"Privacy","contenu":"  body  ","updated_at":"2025-03-01"}`)

	assert.Equal(t, "Privacy", doc.Title())
	assert.Equal(t, "body", doc.Content())
	assert.Equal(t, "2025-03-01", doc.UpdatedAt())
	assert.Equal(t, "", doc.Field("missing"))
}

func TestDocument_ArrayPayloadReadsFirstElement(t *testing.T) {
	doc := Document(`[{"titre":"Qui sommes-nous"},{"titre":"ignored"}]`)
	assert.Equal(t, "Qui sommes-nous", doc.Title())
}

func TestDocument_NonStringFieldsIgnored(t *testing.T) {
	doc := Document(`{"titre": 12, "title": "Fallback"}`)
	assert.Equal(t, "Fallback", doc.Title())
}

func TestDocument_Sections(t *testing.T) {
	doc := Document(`{"sections":[{"titre":"Acceptation","contenu":"..."},{},{"title":"Résiliation"}]}`)

	sections := doc.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "Acceptation", sections[0].Title)
	assert.Equal(t, "Résiliation", sections[1].Title)
}

func TestDocument_IsEmpty(t *testing.T) {
	assert.True(t, Document(nil).IsEmpty())
	assert.True(t, Document(`null`).IsEmpty())
	assert.True(t, Document(` {} `).IsEmpty())
	assert.False(t, Document(`{"a":1}`).IsEmpty())
	assert.True(t, Document(`not json`).Title() == "")
}
