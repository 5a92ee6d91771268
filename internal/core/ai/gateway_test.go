package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipePayloadArray(t *testing.T) {
	raws, err := parseRecipePayload("```json\n[{\"title\": \"Pasta\"}, {\"title\": \"Risotto\"}]\n```")

	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "Pasta", raws[0]["title"])
}

func TestParseRecipePayloadSingleObjectWrapped(t *testing.T) {
	raws, err := parseRecipePayload(`Ecco la variante: {"title": "Variante leggera"} buon lavoro`)

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Variante leggera", raws[0]["title"])
}

func TestParseRecipePayloadUnquotedKeysRecovered(t *testing.T) {
	raws, err := parseRecipePayload(`[{title: "Pasta"}]`)

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Pasta", raws[0]["title"])
}

func TestParseRecipePayloadGarbage(t *testing.T) {
	_, err := parseRecipePayload("oggi niente ricette, mi dispiace")
	assert.Error(t, err)
}
