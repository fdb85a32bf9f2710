package service

import (
	"context"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type AssessmentInput struct {
	Title           string            `json:"title" validate:"required,max=255"`
	Description     string            `json:"description"`
	Skill           string            `json:"skill" validate:"max=100"`
	JobID           *uint             `json:"jobId"`
	DurationMinutes int               `json:"durationMinutes" validate:"min=0,max=600"`
	PassingScore    int               `json:"passingScore" validate:"min=0,max=100"`
	Questions       []models.Question `json:"questions" validate:"required,min=1"`
}

type SubmitAssessmentInput struct {
	Answers []int `json:"answers" validate:"required"`
}

type AssessmentService struct {
	assessments *repository.AssessmentRepository
}

func NewAssessmentService(assessments *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{assessments: assessments}
}

func (s *AssessmentService) Create(ctx context.Context, actor Actor, in AssessmentInput) (*models.Assessment, error) {
	if actor.Role != domain.RoleEmployer && !actor.IsAdmin() {
		return nil, domain.Forbidden("only employers can create assessments")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	for i, q := range in.Questions {
		if q.Prompt == "" || len(q.Options) < 2 {
			return nil, domain.Validation("question %d needs a prompt and at least two options", i+1)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return nil, domain.Validation("question %d has no valid answer", i+1)
		}
		if q.Points <= 0 {
			in.Questions[i].Points = 1
		}
	}
	a := &models.Assessment{
		CreatorID:       actor.ID,
		JobID:           in.JobID,
		Title:           in.Title,
		Description:     in.Description,
		Skill:           in.Skill,
		DurationMinutes: lo.Ternary(in.DurationMinutes == 0, 30, in.DurationMinutes),
		PassingScore:    lo.Ternary(in.PassingScore == 0, 70, in.PassingScore),
		Questions:       in.Questions,
		IsActive:        true,
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// visible hides the answer key from everyone but the creator and admins.
func visible(a models.Assessment, actor Actor) models.Assessment {
	if actor.IsAdmin() || a.CreatorID == actor.ID {
		return a
	}
	return a.WithoutAnswers()
}

func (s *AssessmentService) List(ctx context.Context, actor Actor, f repository.AssessmentFilter, p repository.Page) (Paged[models.Assessment], error) {
	p = repository.NewPage(p.Page, p.Limit)
	list, total, err := s.assessments.List(ctx, f, p)
	if err != nil {
		return Paged[models.Assessment]{}, err
	}
	list = lo.Map(list, func(a models.Assessment, _ int) models.Assessment { return visible(a, actor) })
	return newPaged(list, total, p), nil
}

func (s *AssessmentService) Get(ctx context.Context, actor Actor, id uint) (*models.Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "assessment")
	}
	v := visible(*a, actor)
	return &v, nil
}

// Submit scores the answers. Each user gets one attempt per assessment.
func (s *AssessmentService) Submit(ctx context.Context, actor Actor, id uint, in SubmitAssessmentInput) (*models.AssessmentResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "assessment")
	}
	if !a.IsActive {
		return nil, domain.Validation("assessment is closed")
	}
	if len(in.Answers) != len(a.Questions) {
		return nil, domain.Validation("expected %d answers, got %d", len(a.Questions), len(in.Answers))
	}

	score, maxScore := Score(a.Questions, in.Answers)
	res := &models.AssessmentResult{
		AssessmentID: a.ID,
		UserID:       actor.ID,
		Answers:      in.Answers,
		Score:        score,
		MaxScore:     maxScore,
		Passed:       maxScore > 0 && score*100 >= a.PassingScore*maxScore,
	}
	if err := s.assessments.CreateResult(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("assessment already submitted")
		}
		return nil, err
	}
	return res, nil
}

// Score sums the points of correctly answered questions.
func Score(questions []models.Question, answers []int) (score, maxScore int) {
	for i, q := range questions {
		maxScore += q.Points
		if i < len(answers) && answers[i] == q.AnswerIndex {
			score += q.Points
		}
	}
	return score, maxScore
}

// Results lists every result to the creator and admins and only the caller's
// own result to anyone else.
func (s *AssessmentService) Results(ctx context.Context, actor Actor, id uint) ([]models.AssessmentResult, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "assessment")
	}
	userID := actor.ID
	if actor.IsAdmin() || a.CreatorID == actor.ID {
		userID = 0
	}
	list, err := s.assessments.ListResults(ctx, id, userID)
	if list == nil {
		list = []models.AssessmentResult{}
	}
	return list, err
}
