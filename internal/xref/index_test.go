package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	id      string
	patient string
}

func key(o order) string { return o.id }

func TestLookup(t *testing.T) {
	ix := Build([]order{{"12", "Ana"}, {"13", "Luis"}}, key)
	require.Equal(t, 2, ix.Len())

	o, ok := ix.Lookup("12")
	require.True(t, ok)
	assert.Equal(t, "Ana", o.patient)

	_, ok = ix.Lookup("99")
	assert.False(t, ok)
}

func TestFirstDuplicateWins(t *testing.T) {
	ix := Build([]order{{"1", "first"}, {"1", "second"}}, key)
	o, _ := ix.Lookup("1")
	assert.Equal(t, "first", o.patient)
}

func TestLabelFallsBackToRawKey(t *testing.T) {
	ix := Build([]order{{"12", "Ana"}}, key)
	found := func(o order) string { return "Patient: " + o.patient }
	missing := func(k string) string { return "Order ID: " + k }

	assert.Equal(t, "Patient: Ana", ix.Label("12", found, missing))
	assert.Equal(t, "Order ID: 99", ix.Label("99", found, missing))
}

func TestEmptyIndex(t *testing.T) {
	ix := Build[order](nil, key)
	assert.Equal(t, 0, ix.Len())
	_, ok := ix.Lookup("")
	assert.False(t, ok)
}
