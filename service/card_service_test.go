package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcard-sheet/models"
	"idcard-sheet/repository"
)

func TestCardService_AddUpToCapacity(t *testing.T) {
	s := newTestCardService()

	for i := 0; i < models.SheetCapacity; i++ {
		pos, err := s.Add(student(fmt.Sprintf("Student %d", i)))
		require.NoError(t, err)
		assert.Equal(t, i, pos)
	}
	assert.Equal(t, 0, s.Remaining())

	pos, err := s.Add(student("Fifth"))
	assert.ErrorIs(t, err, repository.ErrCapacityExceeded)
	assert.Equal(t, -1, pos)

	records := s.Records()
	require.Len(t, records, models.SheetCapacity)
	assert.Equal(t, "Student 0", records[0].Name)
	assert.Equal(t, "Student 3", records[3].Name)
}

func TestCardService_ClearKeepsMirror(t *testing.T) {
	s := newTestCardService()
	_, err := s.Add(student("A"))
	require.NoError(t, err)

	assert.True(t, s.ToggleMirror())
	s.Clear()

	assert.Empty(t, s.Records())
	assert.Equal(t, models.SheetCapacity, s.Remaining())
	assert.True(t, s.Mirrored())
}

func TestCardService_ToggleMirrorTwiceRestores(t *testing.T) {
	s := newTestCardService()
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.Add(student(name))
		require.NoError(t, err)
	}

	before := s.Records()
	assert.False(t, s.Mirrored())
	assert.True(t, s.ToggleMirror())
	assert.False(t, s.ToggleMirror())
	assert.False(t, s.Mirrored())
	assert.Equal(t, before, s.Records())
}

func TestCardService_ClearOnEmptyIsNoop(t *testing.T) {
	s := newTestCardService()
	s.Clear()
	s.Clear()
	assert.Empty(t, s.Records())

	pos, err := s.Add(student("A"))
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}
