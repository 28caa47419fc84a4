package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/internal/repository/specification"
	"ai-interviewer-be/internal/repository/unitofwork"
	"ai-interviewer-be/pkg/interview/engine"
	"ai-interviewer-be/pkg/interview/state"
)

// --- Fakes ---

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt string) string {
	switch {
	case strings.Contains(prompt, "Evaluate the following question"):
		return `{"rating": 7, "feedback": "Fine question."}`
	case strings.Contains(prompt, "Evaluate the following candidate answer"):
		return `{"rating": 5, "feedback": "Thin answer."}`
	case strings.Contains(prompt, "summary evaluation"):
		return `{"overall_quality": 6, "strengths": ["flow"], "areas_for_improvement": ["detail"], "recommendation": "revise", "final_feedback": "Workable."}`
	default:
		return "Generated question?"
	}
}

type noSearch struct{}

func (noSearch) Search(ctx context.Context, query string, topK int) ([]string, error) {
	return []string{}, nil
}

type fakeReportRepo struct {
	created []*entity.InterviewReport
}

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.InterviewReport) error {
	r.created = append(r.created, report)
	return nil
}

func (r *fakeReportRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.InterviewReport, error) {
	for _, rep := range r.created {
		if rep.SessionId == sessionId {
			return rep, nil
		}
	}
	return nil, nil
}

func (r *fakeReportRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewReport, error) {
	return r.created, nil
}

func (r *fakeReportRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.created)), nil
}

type fakeCvRepo struct {
	deleted []uuid.UUID
}

func (r *fakeCvRepo) Create(ctx context.Context, e *entity.CvEmbedding) error      { return nil }
func (r *fakeCvRepo) CreateBulk(ctx context.Context, e []*entity.CvEmbedding) error { return nil }
func (r *fakeCvRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.deleted = append(r.deleted, sessionId)
	return nil
}
func (r *fakeCvRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CvEmbedding, error) {
	return nil, nil
}
func (r *fakeCvRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeCvRepo) SearchSimilarWithDistance(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredCvEmbedding, error) {
	return nil, nil
}

type fakeUow struct {
	reports *fakeReportRepo
	cv      *fakeCvRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) CvEmbeddingRepository() contract.CvEmbeddingRepository {
	return u.cv
}
func (u *fakeUow) InterviewReportRepository() contract.InterviewReportRepository {
	return u.reports
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- Harness ---

type serviceFixture struct {
	svc       IInterviewService
	store     contract.SessionStore
	reports   *fakeReportRepo
	cv        *fakeCvRepo
	publisher *recordingPublisher
}

func newFixture(maxSteps int) *serviceFixture {
	eng := engine.New(stubGenerator{}, noSearch{}, nil, 0.55, 3, nil)
	store := memory.NewSessionRepository()
	reports := &fakeReportRepo{}
	cvRepo := &fakeCvRepo{}
	publisher := &recordingPublisher{}

	svc := NewInterviewService(
		eng,
		store,
		&fakeUowFactory{uow: &fakeUow{reports: reports, cv: cvRepo}},
		publisher,
		nil,
		noopLogger{},
		maxSteps,
	)
	return &serviceFixture{svc: svc, store: store, reports: reports, cv: cvRepo, publisher: publisher}
}

// --- Tests ---

func TestCreateInterviewDefaults(t *testing.T) {
	f := newFixture(2)

	res, err := f.svc.Create(context.Background(), &dto.CreateInterviewRequest{
		Topic:         "golang",
		QuestionStyle: "not-a-style",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, state.StyleBroadFollowup, res.QuestionStyle, "invalid style must default")
	assert.Equal(t, 2, res.MaxSteps, "missing max_steps must default")
	assert.Equal(t, state.StatusAwaitingAnswer, res.Status)
	assert.NotEmpty(t, res.Question)
	assert.False(t, res.CvIndexing)

	_, found, err := f.store.Get(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.True(t, found, "session must be persisted in the store")
}

func TestCreateInterviewQueuesCvEmbedding(t *testing.T) {
	f := newFixture(2)

	res, err := f.svc.Create(context.Background(), &dto.CreateInterviewRequest{
		Topic: "golang",
	}, "Ten years writing Go services.")
	require.NoError(t, err)

	assert.True(t, res.CvIndexing)
	require.Len(t, f.publisher.payloads, 1, "CV content must be queued for embedding")
	assert.Contains(t, string(f.publisher.payloads[0]), res.SessionId.String())
}

func TestSubmitAnswerFlowToCompletion(t *testing.T) {
	f := newFixture(2)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &dto.CreateInterviewRequest{Topic: "golang"}, "")
	require.NoError(t, err)

	first, err := f.svc.SubmitAnswer(ctx, created.SessionId, &dto.SubmitAnswerRequest{Answer: "answer one"})
	require.NoError(t, err)
	assert.Equal(t, state.StatusAwaitingAnswer, first.Status)
	assert.Equal(t, 1, first.Step)
	require.NotNil(t, first.LastFeedback)
	assert.Equal(t, 7, first.LastFeedback.QuestionRating)
	assert.Nil(t, first.FinalEvaluation)
	assert.Empty(t, f.reports.created, "no report before completion")

	final, err := f.svc.SubmitAnswer(ctx, created.SessionId, &dto.SubmitAnswerRequest{Answer: "answer two"})
	require.NoError(t, err)
	assert.Equal(t, state.StatusCompleted, final.Status)
	assert.Empty(t, final.Question)
	require.NotNil(t, final.FinalEvaluation)
	assert.Equal(t, "revise", final.FinalEvaluation.Recommendation)
	assert.Len(t, final.Feedback, 2)

	require.Len(t, f.reports.created, 1, "completion must persist a report")
	report := f.reports.created[0]
	assert.Equal(t, created.SessionId, report.SessionId)
	assert.Equal(t, 2, report.Steps)
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	f := newFixture(2)

	_, err := f.svc.SubmitAnswer(context.Background(), uuid.New(), &dto.SubmitAnswerRequest{Answer: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubmitAnswerAfterCompletionConflicts(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &dto.CreateInterviewRequest{Topic: "golang"}, "")
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, created.SessionId, &dto.SubmitAnswerRequest{Answer: "only answer"})
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, created.SessionId, &dto.SubmitAnswerRequest{Answer: "too late"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed")
}

func TestDeleteInterviewClearsState(t *testing.T) {
	f := newFixture(2)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &dto.CreateInterviewRequest{Topic: "golang"}, "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.SessionId))

	_, found, err := f.store.Get(ctx, created.SessionId)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []uuid.UUID{created.SessionId}, f.cv.deleted, "CV embeddings must be cleaned up")
}
