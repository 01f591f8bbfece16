package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRangeExplicitBounds(t *testing.T) {
	r, err := buildRange("", "2024-01-01", "2024-01-31")

	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), *r.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local), *r.End)
}

func TestBuildRangeOverridesPresetBound(t *testing.T) {
	r, err := buildRange("thisMonth", "2024-01-05", "")

	require.NoError(t, err)
	require.NotNil(t, r.Start)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local), *r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, "thisMonth", r.Preset)
}

func TestBuildRangeRejectsBadDate(t *testing.T) {
	_, err := buildRange("", "01/02/2024", "")
	require.Error(t, err)
}

func TestBuildRangeEmpty(t *testing.T) {
	r, err := buildRange("", "", "")

	require.NoError(t, err)
	assert.True(t, r.IsZero())
}
