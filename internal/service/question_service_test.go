package service

import (
	"testing"

	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddQuestionAssignsSequenceNumbers(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)

	q1 := env.addSubjective(t, paper.ID, 10, "First question.")
	q2 := env.addSubjective(t, paper.ID, 10, "Second question.")
	assert.Equal(t, 1, q1.SequenceNumber)
	assert.Equal(t, 2, q2.SequenceNumber)
}

func TestQuestionValidation(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	outcome := env.seedOutcome(t, course.ID, "CO1")
	otherCourse := model.Course{Code: "MA101", Title: "Calculus"}
	require.NoError(t, env.courses.Create(&otherCourse))
	foreignOutcome := env.seedOutcome(t, otherCourse.ID, "CO1")
	paper := env.createPaper(t, course.ID, 10)

	missing := uint(9999)
	cases := []struct {
		name    string
		req     dto.QuestionRequest
		wantErr bool
	}{
		{
			name: "mcq with one option",
			req: dto.QuestionRequest{
				Content: "Pick one.",
				Type:    model.QuestionTypeMCQ,
				Options: []dto.OptionRequest{{Text: "A", IsCorrect: true}},
			},
			wantErr: true,
		},
		{
			name: "mcq with no correct option",
			req: dto.QuestionRequest{
				Content: "Pick one.",
				Type:    model.QuestionTypeMCQ,
				Options: []dto.OptionRequest{{Text: "A"}, {Text: "B"}},
			},
			wantErr: true,
		},
		{
			name: "mcq with two correct options",
			req: dto.QuestionRequest{
				Content: "Pick one.",
				Type:    model.QuestionTypeMCQ,
				Options: []dto.OptionRequest{{Text: "A", IsCorrect: true}, {Text: "B", IsCorrect: true}},
			},
			wantErr: true,
		},
		{
			name: "subjective with options",
			req: dto.QuestionRequest{
				Content: "Discuss.",
				Type:    model.QuestionTypeSubjective,
				Options: []dto.OptionRequest{{Text: "A", IsCorrect: true}},
			},
			wantErr: true,
		},
		{
			name: "outcome from another course",
			req: dto.QuestionRequest{
				Content: "Discuss.",
				Type:    model.QuestionTypeSubjective,
				COID:    &foreignOutcome.ID,
			},
			wantErr: true,
		},
		{
			name: "nonexistent outcome",
			req: dto.QuestionRequest{
				Content: "Discuss.",
				Type:    model.QuestionTypeSubjective,
				COID:    &missing,
			},
			wantErr: true,
		},
		{
			name: "valid mcq",
			req: dto.QuestionRequest{
				Content: "Which scheduler is preemptive?",
				Type:    model.QuestionTypeMCQ,
				Marks:   intPtr(2),
				COID:    &outcome.ID,
				Options: []dto.OptionRequest{
					{Text: "FCFS"},
					{Text: "Round robin", IsCorrect: true},
					{Text: "SJF"},
				},
			},
		},
		{
			name: "valid subjective",
			req: dto.QuestionRequest{
				Content: "Explain demand paging.",
				Type:    model.QuestionTypeSubjective,
				Marks:   intPtr(10),
				COID:    &outcome.ID,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			question, err := env.questionSvc.AddQuestion(paper.ID, tc.req, 10)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, question.Options, len(tc.req.Options))
		})
	}
}

func TestQuestionEditingLockedOutsideEditableStates(t *testing.T) {
	env := newTestEnv()
	paperID, q1, _ := env.submittedPaper(t, 10)

	req := dto.QuestionRequest{Content: "Reworded.", Type: model.QuestionTypeSubjective}

	_, err := env.questionSvc.UpdateQuestion(paperID, q1, req, 10)
	assert.ErrorIs(t, err, apperr.ErrNotDraft)
	err = env.questionSvc.DeleteQuestion(paperID, q1, 10)
	assert.ErrorIs(t, err, apperr.ErrNotDraft)
	_, err = env.questionSvc.AddQuestion(paperID, req, 11)
	assert.ErrorIs(t, err, apperr.ErrNotAuthor)

	// A rejection reopens editing for the author.
	_, err = env.claimSvc.ClaimPaper(paperID, 1)
	require.NoError(t, err)
	_, err = env.paperSvc.RejectPaper(paperID, 1, "rework the first question")
	require.NoError(t, err)

	_, err = env.questionSvc.UpdateQuestion(paperID, q1, req, 10)
	require.NoError(t, err)
}

func TestUpdateQuestionReplacesOptions(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)

	question, err := env.questionSvc.AddQuestion(paper.ID, dto.QuestionRequest{
		Content: "Which is a page replacement policy?",
		Type:    model.QuestionTypeMCQ,
		Options: []dto.OptionRequest{
			{Text: "LRU", IsCorrect: true},
			{Text: "TCP"},
		},
	}, 10)
	require.NoError(t, err)

	updated, err := env.questionSvc.UpdateQuestion(paper.ID, question.ID, dto.QuestionRequest{
		Content: "Which is a page replacement policy?",
		Type:    model.QuestionTypeMCQ,
		Options: []dto.OptionRequest{
			{Text: "FIFO"},
			{Text: "LRU", IsCorrect: true},
			{Text: "Optimal"},
		},
	}, 10)
	require.NoError(t, err)
	require.Len(t, updated.Options, 3)
	assert.Equal(t, "FIFO", updated.Options[0].Text)
	assert.Equal(t, 1, updated.Options[0].Position)
	assert.True(t, updated.Options[1].IsCorrect)
}

func TestDeleteQuestionExcludesFromEverything(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)
	q1 := env.addSubjective(t, paper.ID, 10, "Keep me.")
	q2 := env.addSubjective(t, paper.ID, 10, "Delete me.")

	require.NoError(t, env.questionSvc.DeleteQuestion(paper.ID, q2.ID, 10))

	loaded, err := env.paperSvc.GetPaper(paper.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, q1.ID, loaded.Questions[0].ID)

	_, err = env.questionSvc.UpdateQuestion(paper.ID, q2.ID, dto.QuestionRequest{
		Content: "Resurrect.",
		Type:    model.QuestionTypeSubjective,
	}, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Deleting the last active question makes the paper unsubmittable.
	require.NoError(t, env.questionSvc.DeleteQuestion(paper.ID, q1.ID, 10))
	_, err = env.paperSvc.SubmitPaper(paper.ID, 10)
	assert.ErrorIs(t, err, apperr.ErrEmptyPaper)
}

func TestDeletedQuestionNotClaimable(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)
	q1 := env.addSubjective(t, paper.ID, 10, "Stays.")
	q2 := env.addSubjective(t, paper.ID, 10, "Goes.")
	require.NoError(t, env.questionSvc.DeleteQuestion(paper.ID, q2.ID, 10))
	_, err := env.paperSvc.SubmitPaper(paper.ID, 10)
	require.NoError(t, err)

	_, err = env.claimSvc.ClaimPaper(paper.ID, 1)
	require.NoError(t, err)
	_, err = env.claimSvc.ClaimQuestion(paper.ID, q2.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	status, err := env.paperSvc.PaperStatus(paper.ID)
	require.NoError(t, err)
	require.Len(t, status.Questions, 1)
	assert.Equal(t, q1.ID, status.Questions[0].QuestionID)
}

func TestDeletedSequenceNumberNotReused(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)
	env.addSubjective(t, paper.ID, 10, "One.")
	q2 := env.addSubjective(t, paper.ID, 10, "Two.")
	require.NoError(t, env.questionSvc.DeleteQuestion(paper.ID, q2.ID, 10))

	q3 := env.addSubjective(t, paper.ID, 10, "Three.")
	assert.Equal(t, 3, q3.SequenceNumber, "deleted rows keep their slot in the sequence")
}

func TestReorderQuestions(t *testing.T) {
	env := newTestEnv()
	course := env.seedCourse(t)
	paper := env.createPaper(t, course.ID, 10)
	q1 := env.addSubjective(t, paper.ID, 10, "One.")
	q2 := env.addSubjective(t, paper.ID, 10, "Two.")
	q3 := env.addSubjective(t, paper.ID, 10, "Three.")

	_, err := env.questionSvc.ReorderQuestions(paper.ID, dto.QuestionReorderRequest{
		QuestionIDs: []uint{q3.ID, q1.ID},
	}, 10)
	assert.Error(t, err, "partial orders are rejected")

	_, err = env.questionSvc.ReorderQuestions(paper.ID, dto.QuestionReorderRequest{
		QuestionIDs: []uint{q3.ID, q1.ID, 9999},
	}, 10)
	assert.Error(t, err, "foreign question ids are rejected")

	_, err = env.questionSvc.ReorderQuestions(paper.ID, dto.QuestionReorderRequest{
		QuestionIDs: []uint{q3.ID, q1.ID, q1.ID},
	}, 10)
	assert.Error(t, err, "duplicate question ids are rejected")
	unchanged, err := env.questions.FindByPaperID(paper.ID)
	require.NoError(t, err)
	assert.Equal(t, q1.ID, unchanged[0].ID)
	assert.Equal(t, q2.ID, unchanged[1].ID)
	assert.Equal(t, q3.ID, unchanged[2].ID)

	reordered, err := env.questionSvc.ReorderQuestions(paper.ID, dto.QuestionReorderRequest{
		QuestionIDs: []uint{q3.ID, q1.ID, q2.ID},
	}, 10)
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, q3.ID, reordered[0].ID)
	assert.Equal(t, 1, reordered[0].SequenceNumber)
	assert.Equal(t, q1.ID, reordered[1].ID)
	assert.Equal(t, q2.ID, reordered[2].ID)
	assert.Equal(t, 3, reordered[2].SequenceNumber)
}
