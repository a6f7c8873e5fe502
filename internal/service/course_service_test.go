package service

import (
	"testing"

	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCatalogCRUD(t *testing.T) {
	env := newTestEnv()
	svc := NewCourseService(env.courses)

	created, err := svc.CreateCourse(dto.CourseCreateRequest{Code: "CS301", Title: "Operating Systems"})
	require.NoError(t, err)

	updated, err := svc.UpdateCourse(created.ID, dto.CourseUpdateRequest{Code: "CS302", Title: "Advanced Operating Systems"})
	require.NoError(t, err)
	assert.Equal(t, "CS302", updated.Code)
	assert.Equal(t, "Advanced Operating Systems", updated.Title)

	loaded, err := svc.GetCourse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS302", loaded.Code)

	_, err = svc.UpdateCourse(9999, dto.CourseUpdateRequest{Code: "XX000", Title: "Ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOutcomeScopedToCourse(t *testing.T) {
	env := newTestEnv()
	svc := NewCourseService(env.courses)

	course, err := svc.CreateCourse(dto.CourseCreateRequest{Code: "CS301", Title: "Operating Systems"})
	require.NoError(t, err)
	other, err := svc.CreateCourse(dto.CourseCreateRequest{Code: "MA101", Title: "Calculus"})
	require.NoError(t, err)

	outcome, err := svc.AddOutcome(course.ID, dto.CourseOutcomeCreateRequest{Code: "CO1", Description: "memory management"})
	require.NoError(t, err)

	err = svc.DeleteOutcome(other.ID, outcome.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "outcome ids are scoped to their course")
	require.NoError(t, svc.DeleteOutcome(course.ID, outcome.ID))

	outcomes, err := svc.ListOutcomes(course.ID)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
