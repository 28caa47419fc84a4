package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/unitofwork"
	"ai-interviewer-be/pkg/events"
	"ai-interviewer-be/pkg/interview/engine"
	"ai-interviewer-be/pkg/interview/state"
	pktNats "ai-interviewer-be/pkg/nats"
)

type IInterviewService interface {
	Create(ctx context.Context, req *dto.CreateInterviewRequest, cvContent string) (*dto.CreateInterviewResponse, error)
	SubmitAnswer(ctx context.Context, sessionId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStatusResponse, error)
	Delete(ctx context.Context, sessionId uuid.UUID) error
}

type interviewService struct {
	engine           *engine.Engine
	sessionStore     contract.SessionStore
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
	sysLogger        logger.ILogger
	defaultMaxSteps  int

	// Per-session locks serialize read-modify-write cycles so two answers
	// for the same session cannot interleave.
	sessionLocks sync.Map
}

func NewInterviewService(
	eng *engine.Engine,
	sessionStore contract.SessionStore,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
	defaultMaxSteps int,
) IInterviewService {
	if defaultMaxSteps <= 0 {
		defaultMaxSteps = 2
	}
	return &interviewService{
		engine:           eng,
		sessionStore:     sessionStore,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		natsPub:          natsPub,
		sysLogger:        sysLogger,
		defaultMaxSteps:  defaultMaxSteps,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_interview.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open LLM log file, falling back to stdout: %v", err)
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// NewLLMLogger exposes the dedicated LLM log for wiring in bootstrap.
func NewLLMLogger() *log.Logger {
	return initLLMLogger()
}

func (s *interviewService) lockSession(sessionId uuid.UUID) func() {
	muIface, _ := s.sessionLocks.LoadOrStore(sessionId, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *interviewService) Create(ctx context.Context, req *dto.CreateInterviewRequest, cvContent string) (*dto.CreateInterviewResponse, error) {
	style, valid := state.NormalizeStyle(req.QuestionStyle)
	if !valid && req.QuestionStyle != "" {
		s.sysLogger.Warn("interview", "Unknown question style, defaulting", map[string]interface{}{
			"requested_style": req.QuestionStyle,
			"default_style":   style,
		})
	}

	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = s.defaultMaxSteps
	}

	sessionId := uuid.New()
	session := state.New(sessionId, req.Topic, style, cvContent, maxSteps)

	cvIndexing := false
	if cvContent != "" {
		payload, err := json.Marshal(dto.PublishEmbedCvMessage{
			SessionId: sessionId,
			Content:   cvContent,
		})
		if err == nil && s.publisherService != nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				s.sysLogger.Error("interview", "Failed to queue CV embedding", map[string]interface{}{
					"session_id": sessionId.String(),
					"error":      err.Error(),
				})
			} else {
				cvIndexing = true
			}
		}
	}

	if err := s.engine.Start(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	s.sysLogger.Info("interview", "Session created", map[string]interface{}{
		"session_id": sessionId.String(),
		"topic":      req.Topic,
		"style":      style,
		"max_steps":  maxSteps,
	})

	return &dto.CreateInterviewResponse{
		SessionId:     sessionId,
		Topic:         session.Topic,
		QuestionStyle: session.QuestionStyle,
		Question:      session.PendingQuestion,
		Step:          session.Step,
		MaxSteps:      session.MaxSteps,
		Status:        session.Status,
		CvIndexing:    cvIndexing,
	}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, sessionId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	unlock := s.lockSession(sessionId)
	defer unlock()

	session, found, err := s.sessionStore.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, serverutils.NewHttpError(fiber.StatusNotFound, "interview session not found")
	}

	if err := s.engine.Submit(ctx, session, req.Answer); err != nil {
		switch err {
		case engine.ErrSessionCompleted:
			return nil, serverutils.NewHttpError(fiber.StatusConflict, "interview already completed")
		case engine.ErrNoPendingQuestion:
			return nil, serverutils.NewHttpError(fiber.StatusConflict, "session has no pending question")
		default:
			return nil, err
		}
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	res := &dto.SubmitAnswerResponse{
		SessionId: sessionId,
		Status:    session.Status,
		Step:      session.Step,
		MaxSteps:  session.MaxSteps,
		Question:  session.PendingQuestion,
	}
	if len(session.Feedback) > 0 {
		last := dto.TurnFeedbackResponse(session.Feedback[len(session.Feedback)-1])
		res.LastFeedback = &last
	}

	if session.Status == state.StatusCompleted {
		res.Feedback = dto.ToTurnFeedbackResponses(session.Feedback)
		res.FinalEvaluation = dto.ToFinalEvaluationResponse(session.FinalEvaluation)
		s.persistReport(ctx, session)
		s.publishCompleted(ctx, session)
	}

	return res, nil
}

func (s *interviewService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStatusResponse, error) {
	session, found, err := s.sessionStore.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, serverutils.NewHttpError(fiber.StatusNotFound, "interview session not found")
	}

	transcript := make([]dto.TurnResponse, len(session.Transcript))
	for i, turn := range session.Transcript {
		transcript[i] = dto.TurnResponse(turn)
	}

	return &dto.SessionStatusResponse{
		SessionId:       session.SessionID,
		Topic:           session.Topic,
		QuestionStyle:   session.QuestionStyle,
		Status:          session.Status,
		Step:            session.Step,
		MaxSteps:        session.MaxSteps,
		PendingQuestion: session.PendingQuestion,
		HasCvIndex:      session.HasCVIndex,
		RetrievalUsed:   session.RetrievalFlag,
		SimilarityScore: session.SimilarityScore,
		Transcript:      transcript,
		Feedback:        dto.ToTurnFeedbackResponses(session.Feedback),
		FinalEvaluation: dto.ToFinalEvaluationResponse(session.FinalEvaluation),
		CreatedAt:       session.CreatedAt,
	}, nil
}

func (s *interviewService) Delete(ctx context.Context, sessionId uuid.UUID) error {
	if err := s.sessionStore.Delete(ctx, sessionId); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CvEmbeddingRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		s.sysLogger.Warn("interview", "Failed to delete CV embeddings", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	s.sessionLocks.Delete(sessionId)
	return nil
}

// persistReport stores the terminal snapshot. Persistence failures are
// logged, not surfaced: the candidate already has their evaluation in hand.
func (s *interviewService) persistReport(ctx context.Context, session *state.SessionState) {
	if session.FinalEvaluation == nil {
		return
	}

	report := &entity.InterviewReport{
		Id:              uuid.New(),
		SessionId:       session.SessionID,
		Topic:           session.Topic,
		QuestionStyle:   session.QuestionStyle,
		Steps:           session.Step,
		Transcript:      session.Transcript,
		Feedback:        session.Feedback,
		FinalEvaluation: *session.FinalEvaluation,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InterviewReportRepository().Create(ctx, report); err != nil {
		s.sysLogger.Error("interview", "Failed to persist interview report", map[string]interface{}{
			"session_id": session.SessionID.String(),
			"error":      err.Error(),
		})
		return
	}

	s.sysLogger.Info("interview", "Interview report persisted", map[string]interface{}{
		"session_id": session.SessionID.String(),
		"report_id":  report.Id.String(),
	})
}

func (s *interviewService) publishCompleted(ctx context.Context, session *state.SessionState) {
	if s.natsPub == nil || session.FinalEvaluation == nil {
		return
	}

	event := events.NewInterviewCompleted(
		session.SessionID.String(),
		session.Topic,
		session.FinalEvaluation.OverallQuality,
		session.FinalEvaluation.Recommendation,
	)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.sysLogger.Warn("interview", "Failed to publish completion event", map[string]interface{}{
			"session_id": session.SessionID.String(),
			"error":      err.Error(),
		})
	}
}
