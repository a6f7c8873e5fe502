package service

// In-memory repository implementations backing the service tests, so the
// workflow logic runs without a database. The record fake guards its claim
// check-and-insert with a mutex, mirroring the store's partial unique index.

import (
	"sort"
	"sync"

	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"gorm.io/gorm"
)

type fakePaperRepo struct {
	mu     sync.Mutex
	nextID uint
	papers map[uint]model.Paper
	qr     *fakeQuestionRepo

	// updateErr, when set, makes Update fail; tests use it to simulate a lost
	// write mid-workflow.
	updateErr error
}

func newFakePaperRepo(qr *fakeQuestionRepo) *fakePaperRepo {
	return &fakePaperRepo{papers: make(map[uint]model.Paper), qr: qr}
}

func (r *fakePaperRepo) Create(paper *model.Paper) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	paper.ID = r.nextID
	r.papers[paper.ID] = *paper
	return nil
}

func (r *fakePaperRepo) FindByID(id uint) (*model.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	paper, ok := r.papers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &paper, nil
}

func (r *fakePaperRepo) FindByIDWithQuestions(id uint) (*model.Paper, error) {
	paper, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	questions, err := r.qr.FindByPaperID(id)
	if err != nil {
		return nil, err
	}
	paper.Questions = questions
	return paper, nil
}

func (r *fakePaperRepo) FindAllWithQuestionCount(status *string, authorID *uint) ([]repository.PaperWithQuestionCount, error) {
	r.mu.Lock()
	papers := make([]model.Paper, 0, len(r.papers))
	for _, p := range r.papers {
		if status != nil && p.Status != *status {
			continue
		}
		if authorID != nil && p.AuthorID != *authorID {
			continue
		}
		papers = append(papers, p)
	}
	r.mu.Unlock()

	sort.Slice(papers, func(i, j int) bool { return papers[i].ID < papers[j].ID })
	results := make([]repository.PaperWithQuestionCount, 0, len(papers))
	for _, p := range papers {
		count, _ := r.qr.CountActiveByPaper(p.ID)
		results = append(results, repository.PaperWithQuestionCount{Paper: p, QuestionCount: int(count)})
	}
	return results, nil
}

func (r *fakePaperRepo) Update(paper *model.Paper) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.papers[paper.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.papers[paper.ID] = *paper
	return nil
}

func (r *fakePaperRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.papers, id)
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint]model.Question
	deleted   map[uint]bool
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]model.Question), deleted: make(map[uint]bool)}
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	question.ID = r.nextID
	for i := range question.Options {
		question.Options[i].QuestionID = question.ID
		question.Options[i].ID = uint(i + 1)
	}
	r.questions[question.ID] = *question
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[id]
	if !ok || r.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &question, nil
}

func (r *fakeQuestionRepo) FindByIDWithOptions(id uint) (*model.Question, error) {
	return r.FindByID(id)
}

func (r *fakeQuestionRepo) FindByPaperID(paperID uint) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var questions []model.Question
	for id, q := range r.questions {
		if q.PaperID == paperID && !r.deleted[id] {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].SequenceNumber < questions[j].SequenceNumber
	})
	return questions, nil
}

func (r *fakeQuestionRepo) CountActiveByPaper(paperID uint) (int64, error) {
	questions, _ := r.FindByPaperID(paperID)
	return int64(len(questions)), nil
}

func (r *fakeQuestionRepo) NextSequenceNumber(paperID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, q := range r.questions {
		if q.PaperID == paperID && q.SequenceNumber > max {
			max = q.SequenceNumber
		}
	}
	return max + 1, nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.questions[question.ID] = *question
	return nil
}

func (r *fakeQuestionRepo) ReplaceOptions(questionID uint, options []model.QuestionOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[questionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range options {
		options[i].QuestionID = questionID
		options[i].ID = uint(i + 1)
	}
	question.Options = options
	r.questions[questionID] = question
	return nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]model.ModerationRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uint]model.ModerationRecord)}
}

func (r *fakeRecordRepo) CreateClaim(record *model.ModerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.TargetType == record.TargetType &&
			existing.TargetID == record.TargetID &&
			existing.Status == model.RecordStatusClaimed {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	record.ID = r.nextID
	r.records[record.ID] = *record
	return nil
}

func (r *fakeRecordRepo) FindByID(id uint) (*model.ModerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *fakeRecordRepo) FindByTarget(targetType string, targetID uint) ([]model.ModerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []model.ModerationRecord
	for _, rec := range r.records {
		if rec.TargetType == targetType && rec.TargetID == targetID {
			records = append(records, rec)
		}
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *fakeRecordRepo) FindActiveByTarget(targetType string, targetID uint) (*model.ModerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TargetType == targetType && rec.TargetID == targetID && rec.Status == model.RecordStatusClaimed {
			found := rec
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindActiveByModeratorAndType(moderatorID uint, targetType string) ([]model.ModerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []model.ModerationRecord
	for _, rec := range r.records {
		if rec.ModeratorID == moderatorID && rec.TargetType == targetType && rec.Status == model.RecordStatusClaimed {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeRecordRepo) FindByModerator(moderatorID uint, status *string) ([]model.ModerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []model.ModerationRecord
	for _, rec := range r.records {
		if rec.ModeratorID != moderatorID {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		records = append(records, rec)
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *fakeRecordRepo) FindByTargets(targetType string, targetIDs []uint) ([]model.ModerationRecord, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[uint]bool, len(targetIDs))
	for _, id := range targetIDs {
		wanted[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []model.ModerationRecord
	for _, rec := range r.records {
		if rec.TargetType == targetType && wanted[rec.TargetID] {
			records = append(records, rec)
		}
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *fakeRecordRepo) Update(record *model.ModerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[record.ID] = *record
	return nil
}

// sortNewestFirst orders by claim time descending, breaking equal timestamps
// by insertion order so "latest record" is deterministic in fast tests.
func sortNewestFirst(records []model.ModerationRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ClaimedAt.Equal(records[j].ClaimedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].ClaimedAt.After(records[j].ClaimedAt)
	})
}

type fakeCourseRepo struct {
	mu       sync.Mutex
	nextID   uint
	courses  map[uint]model.Course
	outcomes map[uint]model.CourseOutcome
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uint]model.Course), outcomes: make(map[uint]model.CourseOutcome)}
}

func (r *fakeCourseRepo) Create(course *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	course.ID = r.nextID
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) FindByID(id uint) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

func (r *fakeCourseRepo) FindByIDWithOutcomes(id uint) (*model.Course, error) {
	course, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	outcomes, _ := r.FindOutcomesByCourse(id)
	course.Outcomes = outcomes
	return course, nil
}

func (r *fakeCourseRepo) FindAll() ([]model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var courses []model.Course
	for _, c := range r.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (r *fakeCourseRepo) Update(course *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) CreateOutcome(outcome *model.CourseOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	outcome.ID = r.nextID
	r.outcomes[outcome.ID] = *outcome
	return nil
}

func (r *fakeCourseRepo) FindOutcomeByID(id uint) (*model.CourseOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome, ok := r.outcomes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &outcome, nil
}

func (r *fakeCourseRepo) FindOutcomesByCourse(courseID uint) ([]model.CourseOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var outcomes []model.CourseOutcome
	for _, o := range r.outcomes {
		if o.CourseID == courseID {
			outcomes = append(outcomes, o)
		}
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Code < outcomes[j].Code })
	return outcomes, nil
}

func (r *fakeCourseRepo) DeleteOutcome(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.outcomes, id)
	return nil
}
