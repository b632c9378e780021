package service

import (
	"context"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentEvaluations bounds the fan-out of oracle calls during a
// single finalize request.
const maxConcurrentEvaluations = 5

// SessionService drives the per-user quiz lifecycle: begin/resume with
// the attempt cap, and finalize with AI grading.
type SessionService interface {
	BeginSession(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error)
	FinalizeSession(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error)
}

type sessionService struct {
	courseRepo  domain.CourseRepository
	sessionRepo domain.SessionRepository
	selector    QuestionSelector
	evaluator   domain.AnswerEvaluator
}

// NewSessionService creates a new instance of sessionService
func NewSessionService(
	courseRepo domain.CourseRepository,
	sessionRepo domain.SessionRepository,
	selector QuestionSelector,
	evaluator domain.AnswerEvaluator,
) SessionService {
	return &sessionService{
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
		selector:    selector,
		evaluator:   evaluator,
	}
}

// BeginSession implements SessionService. Outcomes, in order: attempt
// cap reached (a normal 200 payload, not an error), completed session
// re-armed with fresh questions, in-progress session resumed with its
// existing questions, or a first session created.
func (s *sessionService) BeginSession(ctx context.Context, courseID string, req *dto.BeginSessionRequest) (*dto.BeginSessionResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.Get(ctx, req.Username, course.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}

	if session == nil {
		questions, fromFallback := s.selector.Select(ctx, course, domain.QuestionsPerQuiz)
		session = domain.NewQuizSession(req.Username, req.FullName, course.ID, questions, fromFallback)
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, domain.NewInternalError("Failed to create session", err)
		}
		return beginResponse(session), nil
	}

	if session.Taken {
		if session.AtAttemptLimit() {
			return &dto.BeginSessionResponse{
				Taken:      true,
				TakenCount: session.TakenCount,
				Error:      "Max attempts reached",
			}, nil
		}
		questions, fromFallback := s.selector.Select(ctx, course, domain.QuestionsPerQuiz)
		if err := session.Reset(questions, fromFallback); err != nil {
			return nil, err
		}
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return nil, err
		}
		return beginResponse(session), nil
	}

	// In progress. A fallback-built set is re-rolled if real questions
	// have become available since the session started.
	if session.FallbackQuestions {
		if questions, fromFallback := s.selector.Select(ctx, course, domain.QuestionsPerQuiz); !fromFallback {
			session.ReplaceQuestions(questions, false)
			if err := s.sessionRepo.Update(ctx, session); err != nil {
				return nil, err
			}
			logger.Get().Info("Re-rolled fallback question set",
				zap.String("username", session.Username),
				zap.String("course_id", session.CourseID))
		}
	}
	return beginResponse(session), nil
}

// FinalizeSession implements SessionService. Every submitted answer is
// graded concurrently; oracle failures degrade to the deterministic
// fallback verdict rather than failing the whole request.
func (s *sessionService) FinalizeSession(ctx context.Context, courseID string, req *dto.FinalizeRequest) (*dto.FinalizeResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.Get(ctx, req.Username, course.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError()
	}
	if session.Taken {
		return nil, domain.NewAlreadyFinalizedError()
	}

	evaluated := s.evaluateAnswers(ctx, course.KnowledgeText, req.Answers)

	if err := session.Finalize(evaluated); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return finalizeResponse(session), nil
}

// evaluateAnswers grades each answer with a bounded fan-out, keeping
// results in submission order. A failed oracle call yields the fallback
// verdict for that answer only.
func (s *sessionService) evaluateAnswers(ctx context.Context, knowledgeText string, answers []dto.SubmittedAnswer) []domain.EvaluatedAnswer {
	evaluated := make([]domain.EvaluatedAnswer, len(answers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEvaluations)
	for i, answer := range answers {
		g.Go(func() error {
			result := s.evaluateOne(gctx, knowledgeText, answer.Question, answer.Answer)
			evaluated[i] = domain.EvaluatedAnswer{
				Index:    answer.Index,
				Question: answer.Question,
				Answer:   answer.Answer,
				Score:    result.Score,
				Feedback: result.Feedback,
			}
			return nil
		})
	}
	g.Wait() // workers never return errors; failures degrade in place

	return evaluated
}

func (s *sessionService) evaluateOne(ctx context.Context, knowledgeText, question, answer string) domain.Evaluation {
	if s.evaluator == nil {
		return domain.FallbackEvaluation()
	}
	result, err := s.evaluator.EvaluateAnswer(ctx, knowledgeText, question, answer)
	if err != nil {
		logger.Get().Warn("Answer evaluation failed, using fallback verdict",
			zap.String("question", question),
			zap.Error(err))
		return domain.FallbackEvaluation()
	}
	return result
}

func (s *sessionService) loadCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	id := domain.NormalizeCourseID(courseID)
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(id)
	}
	return course, nil
}

func beginResponse(session *domain.QuizSession) *dto.BeginSessionResponse {
	questions := make([]dto.QuestionPayload, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, dto.QuestionPayload{Q: q.Text})
	}
	return &dto.BeginSessionResponse{
		Taken:      false,
		Questions:  questions,
		TakenCount: session.TakenCount,
		CourseID:   session.CourseID,
	}
}

func finalizeResponse(session *domain.QuizSession) *dto.FinalizeResponse {
	answers := make([]dto.EvaluatedAnswerPayload, 0, len(session.Answers))
	for _, a := range session.Answers {
		answers = append(answers, dto.EvaluatedAnswerPayload{
			Index:    a.Index,
			Question: a.Question,
			Answer:   a.Answer,
			Score:    a.Score,
			Feedback: a.Feedback,
		})
	}
	return &dto.FinalizeResponse{
		FinalScore: session.FinalScore(),
		Total:      session.Total,
		Answers:    answers,
	}
}
