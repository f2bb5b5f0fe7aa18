package service

import (
	"time"

	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/model"
	"github.com/hqanh/campoll/internal/repository"
	"gorm.io/gorm"
)

// Shared in-memory stubs standing in for the gorm repositories and the
// external directories.

type memberKey struct {
	level model.ScopeLevel
	node  uint
	user  uint
}

type stubDirectory struct {
	members map[memberKey]bool
	groups  map[uint][]uint
}

func (d *stubDirectory) BelongsTo(level model.ScopeLevel, nodeID, userID uint) (bool, error) {
	return d.members[memberKey{level, nodeID, userID}], nil
}

func (d *stubDirectory) UserGroupsInCourse(courseID, userID uint) ([]uint, error) {
	return d.groups[courseID], nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubSurveyRepo struct {
	surveys       map[uint]*model.Survey
	listRows      []repository.SurveyWithCount
	listFilters   [][]repository.ScopeFilter
	answeredCount int64
	deleted       []uint
	resets        []uint
	replaced      map[uint][]uint
}

func newStubSurveyRepo(surveys ...*model.Survey) *stubSurveyRepo {
	r := &stubSurveyRepo{surveys: map[uint]*model.Survey{}, replaced: map[uint][]uint{}}
	for _, s := range surveys {
		r.surveys[s.ID] = s
	}
	return r
}

func (r *stubSurveyRepo) Create(survey *model.Survey) error {
	survey.ID = uint(len(r.surveys) + 1)
	r.surveys[survey.ID] = survey
	return nil
}

func (r *stubSurveyRepo) FindByID(id uint) (*model.Survey, error) {
	if s, ok := r.surveys[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSurveyRepo) FindByIDWithQuestions(id uint) (*model.Survey, error) {
	return r.FindByID(id)
}

func (r *stubSurveyRepo) ListForScopes(filters []repository.ScopeFilter) ([]repository.SurveyWithCount, error) {
	r.listFilters = append(r.listFilters, filters)
	return r.listRows, nil
}

func (r *stubSurveyRepo) CountAnswered(surveyID uint) (int64, error) {
	return r.answeredCount, nil
}

func (r *stubSurveyRepo) Update(survey *model.Survey) error {
	r.surveys[survey.ID] = survey
	return nil
}

func (r *stubSurveyRepo) ReplaceGroups(surveyID uint, groupIDs []uint) error {
	r.replaced[surveyID] = groupIDs
	return nil
}

func (r *stubSurveyRepo) Delete(id uint) error {
	delete(r.surveys, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubSurveyRepo) Reset(id uint) error {
	r.resets = append(r.resets, id)
	return nil
}

type stubQuestionRepo struct {
	questions map[uint]*model.Question
	nextIndex int
	created   []*model.Question
	updated   []*model.Question
	removed   []*model.Question
}

func newStubQuestionRepo(questions ...*model.Question) *stubQuestionRepo {
	r := &stubQuestionRepo{questions: map[uint]*model.Question{}}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return r
}

func (r *stubQuestionRepo) FindByID(id uint) (*model.Question, error) {
	if q, ok := r.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubQuestionRepo) NextIndex(surveyID uint) (int, error) {
	return r.nextIndex, nil
}

func (r *stubQuestionRepo) CreateWithChoices(question *model.Question) error {
	question.ID = uint(len(r.questions) + 100)
	r.questions[question.ID] = question
	r.created = append(r.created, question)
	return nil
}

func (r *stubQuestionRepo) UpdateWithChoices(question *model.Question, choices []model.Choice) error {
	question.Choices = choices
	r.questions[question.ID] = question
	r.updated = append(r.updated, question)
	return nil
}

func (r *stubQuestionRepo) Remove(question *model.Question) error {
	delete(r.questions, question.ID)
	r.removed = append(r.removed, question)
	return nil
}

type answeredKey struct{ survey, user uint }

type stubResponseRepo struct {
	answered  map[answeredKey]bool
	votes     []repository.ChoiceVote
	submitErr error
}

func newStubResponseRepo() *stubResponseRepo {
	return &stubResponseRepo{answered: map[answeredKey]bool{}}
}

func (r *stubResponseRepo) HasAnswered(surveyID, userID uint) (bool, error) {
	return r.answered[answeredKey{surveyID, userID}], nil
}

func (r *stubResponseRepo) SubmitAnswers(surveyID, userID uint, votes []repository.ChoiceVote) error {
	if r.submitErr != nil {
		return r.submitErr
	}
	if r.answered[answeredKey{surveyID, userID}] {
		return repository.ErrDuplicateAnswer
	}
	r.votes = append(r.votes, votes...)
	r.answered[answeredKey{surveyID, userID}] = true
	return nil
}

func testEngine(dir *stubDirectory, now time.Time) *access.Engine {
	if dir == nil {
		dir = &stubDirectory{}
	}
	if dir.members == nil {
		dir.members = map[memberKey]bool{}
	}
	if dir.groups == nil {
		dir.groups = map[uint][]uint{}
	}
	return access.NewEngine(dir, dir, fixedClock{now})
}

// courseChain makes user belong to node 1 at every non-system level.
func courseChain(user uint) map[memberKey]bool {
	members := map[memberKey]bool{}
	for l := model.ScopeCountry; l <= model.ScopeCourse; l++ {
		members[memberKey{l, 1, user}] = true
	}
	return members
}

func courseContext() access.ContextNodes {
	var ctx access.ContextNodes
	for l := model.ScopeCountry; l <= model.ScopeCourse; l++ {
		ctx[l] = 1
	}
	return ctx
}
