package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"adcompass/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	res, err := check("A:/ru\nBadLine\nB:/ru/msk,/ru/spb", []string{"/ru/msk", "/us"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, registry.SkipNoSeparator, res.Skipped[0].Reason)
	assert.Equal(t, []searchOutcome{
		{Location: "/ru/msk", Platforms: []string{"A", "B"}},
		{Location: "/us", Platforms: []string{}},
	}, res.Searches)
}

func TestCheckEmpty(t *testing.T) {
	_, err := check(" \n ", nil)
	require.Error(t, err)
	assert.True(t, registry.IsValidation(err))
}

func TestCheckOutput(t *testing.T) {
	res, err := check("A:/ru\nBadLine", nil)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, res.writeText(&text))
	assert.Equal(t, "loaded: 1\nskipped: 1\n  line 2 (no_separator): \"BadLine\"\n", text.String())

	var js bytes.Buffer
	require.NoError(t, res.writeJSON(&js))
	var back map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.EqualValues(t, 1, back["loaded"])
	assert.NotContains(t, back, "searches")
}
