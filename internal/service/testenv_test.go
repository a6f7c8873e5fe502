package service

import (
	"testing"

	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services against the in-memory repositories so workflow
// scenarios run end to end without a database.
type testEnv struct {
	papers    *fakePaperRepo
	questions *fakeQuestionRepo
	records   *fakeRecordRepo
	courses   *fakeCourseRepo

	paperSvc    PaperService
	questionSvc QuestionService
	claimSvc    ClaimService
	ledgerSvc   ModerationLedgerService
	exportSvc   ExportService
}

func newTestEnv() *testEnv {
	questions := newFakeQuestionRepo()
	papers := newFakePaperRepo(questions)
	records := newFakeRecordRepo()
	courses := newFakeCourseRepo()

	return &testEnv{
		papers:      papers,
		questions:   questions,
		records:     records,
		courses:     courses,
		paperSvc:    NewPaperService(papers, questions, records, courses),
		questionSvc: NewQuestionService(questions, papers, courses),
		claimSvc:    NewClaimService(papers, questions, records),
		ledgerSvc:   NewModerationLedgerService(records),
		exportSvc:   NewExportService(papers, courses),
	}
}

func (e *testEnv) seedCourse(t *testing.T) *model.Course {
	t.Helper()
	course := model.Course{Code: "CS301", Title: "Operating Systems"}
	require.NoError(t, e.courses.Create(&course))
	return &course
}

func (e *testEnv) seedOutcome(t *testing.T, courseID uint, code string) *model.CourseOutcome {
	t.Helper()
	outcome := model.CourseOutcome{CourseID: courseID, Code: code, Description: "outcome " + code}
	require.NoError(t, e.courses.CreateOutcome(&outcome))
	return &outcome
}

func (e *testEnv) createPaper(t *testing.T, courseID, authorID uint) *dto.PaperResponse {
	t.Helper()
	paper, err := e.paperSvc.CreatePaper(dto.PaperCreateRequest{Title: "Midterm", CourseID: courseID}, authorID)
	require.NoError(t, err)
	return paper
}

func (e *testEnv) addSubjective(t *testing.T, paperID, authorID uint, content string) *dto.QuestionResponse {
	t.Helper()
	question, err := e.questionSvc.AddQuestion(paperID, dto.QuestionRequest{
		Content: content,
		Type:    model.QuestionTypeSubjective,
		Marks:   intPtr(10),
	}, authorID)
	require.NoError(t, err)
	return question
}

// submittedPaper seeds a course, a two-question paper, and submits it.
// Returns the paper id and the ids of its two questions in order.
func (e *testEnv) submittedPaper(t *testing.T, authorID uint) (uint, uint, uint) {
	t.Helper()
	course := e.seedCourse(t)
	paper := e.createPaper(t, course.ID, authorID)
	q1 := e.addSubjective(t, paper.ID, authorID, "Explain virtual memory.")
	q2 := e.addSubjective(t, paper.ID, authorID, "Compare paging and segmentation.")
	_, err := e.paperSvc.SubmitPaper(paper.ID, authorID)
	require.NoError(t, err)
	return paper.ID, q1.ID, q2.ID
}

func (e *testEnv) paperStatus(t *testing.T, paperID uint) string {
	t.Helper()
	paper, err := e.papers.FindByID(paperID)
	require.NoError(t, err)
	return paper.Status
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
