package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
)

func TestNewSemesterSelector(t *testing.T) {
	t.Run("empty selects all semesters", func(t *testing.T) {
		sel, err := NewSemesterSelector(0, "")
		require.NoError(t, err)
		assert.True(t, sel.IsAll())
		assert.Equal(t, "all semesters", sel.Describe())
		assert.Equal(t, "timetable_all_semesters.pdf", sel.ArtifactFilename())
	})

	t.Run("specific semester", func(t *testing.T) {
		sel, err := NewSemesterSelector(3, "")
		require.NoError(t, err)
		assert.False(t, sel.IsAll())
		assert.Equal(t, "semester 3", sel.Describe())
		assert.Equal(t, "timetable_semester_3.pdf", sel.ArtifactFilename())
	})

	t.Run("parity", func(t *testing.T) {
		sel, err := NewSemesterSelector(0, "odd")
		require.NoError(t, err)
		assert.Equal(t, ParityOdd, sel.Parity)
		assert.Equal(t, "odd semesters", sel.Describe())
		assert.Equal(t, "timetable_odd_semesters.pdf", sel.ArtifactFilename())

		sel, err = NewSemesterSelector(0, "even")
		require.NoError(t, err)
		assert.Equal(t, ParityEven, sel.Parity)
	})

	t.Run("semester out of range", func(t *testing.T) {
		for _, semester := range []int{-1, 9, 42} {
			_, err := NewSemesterSelector(semester, "")
			require.Error(t, err, "semester %d", semester)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidSelector))
		}
	})

	t.Run("unknown parity", func(t *testing.T) {
		_, err := NewSemesterSelector(0, "prime")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSelector))
	})

	t.Run("semester and parity are mutually exclusive", func(t *testing.T) {
		_, err := NewSemesterSelector(2, "even")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSelector))
	})
}
