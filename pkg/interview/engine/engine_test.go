package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"ai-interviewer-be/pkg/interview/state"
	"ai-interviewer-be/pkg/search"
)

// scriptedGenerator returns canned outputs keyed by substrings of the
// prompt, or a default.
type scriptedGenerator struct {
	responses map[string]string
	fallback  string
	prompts   []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) string {
	g.prompts = append(g.prompts, prompt)
	for key, out := range g.responses {
		if strings.Contains(prompt, key) {
			return out
		}
	}
	return g.fallback
}

type fakeKeywordSearch struct {
	snippets []string
	queries  []string
}

func (s *fakeKeywordSearch) Search(ctx context.Context, query string, topK int) ([]string, error) {
	s.queries = append(s.queries, query)
	return s.snippets, nil
}

type fakeRetriever struct {
	result *search.RetrievalResult
	err    error
	calls  int
}

func (r *fakeRetriever) Retrieve(ctx context.Context, sessionID uuid.UUID, query string, topK int) (*search.RetrievalResult, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func newTestSession(style string, maxSteps int) *state.SessionState {
	return state.New(uuid.New(), "site reliability engineering", style, "", maxSteps)
}

func evalResponses() map[string]string {
	return map[string]string{
		"Evaluate the following question": `{"rating": 8, "feedback": "Probing question."}`,
		"Evaluate the following candidate answer": `{"rating": 6, "feedback": "Decent answer."}`,
		"summary evaluation": `{"overall_quality": 7, "strengths": ["pacing"], "areas_for_improvement": ["depth"], "recommendation": "keep", "final_feedback": "Good session."}`,
	}
}

func TestStartSeedsContextAndAsksQuestion(t *testing.T) {
	gen := &scriptedGenerator{fallback: "What does SLO mean to you?"}
	kw := &fakeKeywordSearch{snippets: []string{"snippet one", "snippet two"}}
	eng := New(gen, kw, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleBroadFollowup, 2)
	if err := eng.Start(context.Background(), st); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(kw.queries) != 1 || !strings.Contains(kw.queries[0], "site reliability engineering") {
		t.Errorf("setup search query = %v", kw.queries)
	}
	if len(st.BackgroundContext) != 2 {
		t.Errorf("background context = %d entries, want 2", len(st.BackgroundContext))
	}
	if st.PendingQuestion != "What does SLO mean to you?" {
		t.Errorf("PendingQuestion = %q", st.PendingQuestion)
	}
	if st.Status != state.StatusAwaitingAnswer {
		t.Errorf("Status = %q", st.Status)
	}
	if st.Step != 0 {
		t.Errorf("Step = %d, want 0 before first answer", st.Step)
	}
}

func TestStartFallbackQuestionContainsTopic(t *testing.T) {
	gen := &scriptedGenerator{fallback: ""} // generation exhausted
	eng := New(gen, &fakeKeywordSearch{}, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleBroadFollowup, 2)
	if err := eng.Start(context.Background(), st); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !strings.Contains(st.PendingQuestion, st.Topic) {
		t.Errorf("fallback question %q does not mention topic %q", st.PendingQuestion, st.Topic)
	}
}

func TestSubmitWithoutPendingQuestion(t *testing.T) {
	eng := New(&scriptedGenerator{}, &fakeKeywordSearch{}, nil, 0.55, 3, nil)
	st := newTestSession(state.StyleBroadFollowup, 2)

	err := eng.Submit(context.Background(), st, "an answer from nowhere")
	if err != ErrNoPendingQuestion {
		t.Errorf("Submit() error = %v, want ErrNoPendingQuestion", err)
	}
	if len(st.Transcript) != 0 {
		t.Error("transcript must not grow on rejected submission")
	}
}

func TestSubmitOnCompletedSession(t *testing.T) {
	eng := New(&scriptedGenerator{}, &fakeKeywordSearch{}, nil, 0.55, 3, nil)
	st := newTestSession(state.StyleBroadFollowup, 2)
	st.Status = state.StatusCompleted

	if err := eng.Submit(context.Background(), st, "too late"); err != ErrSessionCompleted {
		t.Errorf("Submit() error = %v, want ErrSessionCompleted", err)
	}
}

func TestRetrievalGuard(t *testing.T) {
	cases := []struct {
		name        string
		retriever   *fakeRetriever
		hasIndex    bool
		wantFlag    bool
		wantKeyword bool
	}{
		{
			name: "close match uses index",
			retriever: &fakeRetriever{result: &search.RetrievalResult{
				Snippets:     []string{"cv chunk"},
				BestDistance: 0.40,
				IndexExists:  true,
			}},
			hasIndex:    true,
			wantFlag:    true,
			wantKeyword: false,
		},
		{
			name: "distant match falls back to keyword search",
			retriever: &fakeRetriever{result: &search.RetrievalResult{
				Snippets:     []string{"cv chunk"},
				BestDistance: 0.70,
				IndexExists:  true,
			}},
			hasIndex:    true,
			wantFlag:    false,
			wantKeyword: true,
		},
		{
			name: "no index falls back to keyword search",
			retriever: &fakeRetriever{result: &search.RetrievalResult{
				Snippets:    []string{},
				IndexExists: false,
			}},
			hasIndex:    true,
			wantFlag:    false,
			wantKeyword: true,
		},
		{
			name:        "retrieval error falls back to keyword search",
			retriever:   &fakeRetriever{err: fmt.Errorf("pg down")},
			hasIndex:    true,
			wantFlag:    false,
			wantKeyword: true,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{responses: evalResponses(), fallback: "Next question?"}
			kw := &fakeKeywordSearch{snippets: []string{"web snippet"}}
			eng := New(gen, kw, tt.retriever, 0.55, 3, nil)

			st := newTestSession(state.StyleBroadFollowup, 5)
			st.HasCVIndex = tt.hasIndex
			st.PendingQuestion = "Tell me about your on-call experience."
			st.Status = state.StatusAwaitingAnswer

			if err := eng.Submit(context.Background(), st, "I carried a pager for three years."); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			if st.RetrievalFlag != tt.wantFlag {
				t.Errorf("RetrievalFlag = %v, want %v", st.RetrievalFlag, tt.wantFlag)
			}

			// Keyword search per turn means a query mentioning both Q and A.
			turnQueries := 0
			for _, q := range kw.queries {
				if strings.Contains(q, "interview context") {
					turnQueries++
				}
			}
			if tt.wantKeyword && turnQueries != 1 {
				t.Errorf("turn keyword queries = %d, want 1", turnQueries)
			}
			if !tt.wantKeyword && turnQueries != 0 {
				t.Errorf("turn keyword queries = %d, want 0", turnQueries)
			}
		})
	}
}

func TestRetrievalSkippedBeforeIndexReady(t *testing.T) {
	retriever := &fakeRetriever{result: &search.RetrievalResult{IndexExists: true, BestDistance: 0.1, Snippets: []string{"x"}}}
	gen := &scriptedGenerator{responses: evalResponses(), fallback: "Next?"}
	eng := New(gen, &fakeKeywordSearch{}, retriever, 0.55, 3, nil)

	st := newTestSession(state.StyleBroadFollowup, 5)
	st.HasCVIndex = false // upload still indexing
	st.PendingQuestion = "First question?"

	if err := eng.Submit(context.Background(), st, "answer"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if retriever.calls != 0 {
		t.Errorf("retriever called %d times before index ready, want 0", retriever.calls)
	}
}

func TestSubmitRecordsTurnAndFeedback(t *testing.T) {
	gen := &scriptedGenerator{responses: evalResponses(), fallback: "And what about error budgets?"}
	eng := New(gen, &fakeKeywordSearch{}, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleNarrowFollowup, 3)
	st.PendingQuestion = "What is an SLI?"

	if err := eng.Submit(context.Background(), st, "A service level indicator."); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if st.Step != 1 {
		t.Errorf("Step = %d, want 1", st.Step)
	}
	if len(st.Transcript) != 1 {
		t.Fatalf("Transcript length = %d, want 1", len(st.Transcript))
	}
	if st.Transcript[0].Question != "What is an SLI?" {
		t.Errorf("recorded question = %q", st.Transcript[0].Question)
	}
	if len(st.Feedback) != 1 {
		t.Fatalf("Feedback length = %d, want 1", len(st.Feedback))
	}
	if st.Feedback[0].QuestionRating != 8 || st.Feedback[0].AnswerRating != 6 {
		t.Errorf("feedback ratings = %+v", st.Feedback[0])
	}
	if st.PendingQuestion != "And what about error budgets?" {
		t.Errorf("next question = %q", st.PendingQuestion)
	}
	if st.FinalEvaluation != nil {
		t.Error("final evaluation must stay nil before the terminal step")
	}
}

func TestNextQuestionFallbackMentionsTopic(t *testing.T) {
	responses := evalResponses()
	gen := &scriptedGenerator{responses: responses, fallback: ""} // question generation fails
	eng := New(gen, &fakeKeywordSearch{}, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleBroadFollowup, 3)
	st.PendingQuestion = "Opening question?"

	if err := eng.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if !strings.Contains(st.PendingQuestion, st.Topic) {
		t.Errorf("fallback next question %q does not mention topic", st.PendingQuestion)
	}
}

func TestFullLifecycle(t *testing.T) {
	gen := &scriptedGenerator{responses: evalResponses(), fallback: "generated question"}
	eng := New(gen, &fakeKeywordSearch{snippets: []string{"seed"}}, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleBroadFollowup, 2)
	ctx := context.Background()

	if err := eng.Start(ctx, st); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// First answer: evaluated, next question asked.
	if err := eng.Submit(ctx, st, "answer one"); err != nil {
		t.Fatalf("Submit(1) error = %v", err)
	}
	if st.Step != 1 || st.Status != state.StatusAwaitingAnswer {
		t.Fatalf("after first answer: step=%d status=%s", st.Step, st.Status)
	}

	// Second answer is terminal.
	if err := eng.Submit(ctx, st, "answer two"); err != nil {
		t.Fatalf("Submit(2) error = %v", err)
	}

	if st.Status != state.StatusCompleted {
		t.Errorf("Status = %q, want COMPLETED", st.Status)
	}
	if st.Step != 2 {
		t.Errorf("Step = %d, want 2", st.Step)
	}
	if st.PendingQuestion != "" {
		t.Errorf("PendingQuestion = %q, want empty on completion", st.PendingQuestion)
	}
	if len(st.Transcript) != 2 || len(st.Feedback) != 2 {
		t.Errorf("transcript=%d feedback=%d, want 2/2", len(st.Transcript), len(st.Feedback))
	}
	if st.FinalEvaluation == nil {
		t.Fatal("FinalEvaluation missing on completed session")
	}
	if st.FinalEvaluation.Recommendation != "keep" {
		t.Errorf("Recommendation = %q", st.FinalEvaluation.Recommendation)
	}

	// Completed sessions reject further answers.
	if err := eng.Submit(ctx, st, "answer three"); err != ErrSessionCompleted {
		t.Errorf("post-completion Submit error = %v, want ErrSessionCompleted", err)
	}
}

func TestSingleStepInterviewCompletesImmediately(t *testing.T) {
	gen := &scriptedGenerator{responses: evalResponses(), fallback: "q"}
	eng := New(gen, &fakeKeywordSearch{}, nil, 0.55, 3, nil)

	st := newTestSession(state.StyleNarrowNonFollowup, 1)
	if err := eng.Start(context.Background(), st); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := eng.Submit(context.Background(), st, "only answer"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if st.Status != state.StatusCompleted {
		t.Errorf("Status = %q, want COMPLETED after single step", st.Status)
	}
	if st.FinalEvaluation == nil {
		t.Error("single-step interview must still produce a final evaluation")
	}
}
