package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCarRequestPriceZeroDistinctFromAbsent(t *testing.T) {
	// price uses a pointer so an explicit 0 survives the update while an
	// absent field leaves the stored price untouched
	var withZero UpdateCarRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price": 0}`), &withZero))
	require.NotNil(t, withZero.Price)
	assert.Equal(t, float64(0), *withZero.Price)

	var absent UpdateCarRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "New title"}`), &absent))
	assert.Nil(t, absent.Price)
}
