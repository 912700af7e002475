package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var pw Password
	require.NoError(t, pw.Set("correct horse battery staple"))
	require.NotEmpty(t, pw.Hash)
	assert.NotEqual(t, "correct horse battery staple", pw.Hash)

	matched, err := pw.Matches("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = pw.Matches("wrong password")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestPasswordMatchesGarbageHash(t *testing.T) {
	pw := Password{Hash: "not-a-bcrypt-hash"}
	matched, err := pw.Matches("anything")
	assert.Error(t, err)
	assert.False(t, matched)
}
