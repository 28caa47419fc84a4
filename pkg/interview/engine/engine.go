// Package engine drives an interview session through its lifecycle: seed
// context and ask the opening question, then for each submitted answer
// decide between indexed retrieval and keyword search, evaluate the
// completed turn, and either ask the next question or close the session
// with a final evaluation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ai-interviewer-be/pkg/interview/parse"
	"ai-interviewer-be/pkg/interview/prompt"
	"ai-interviewer-be/pkg/interview/state"
	"ai-interviewer-be/pkg/interview/transcript"
	"ai-interviewer-be/pkg/search"
)

var (
	// ErrNoPendingQuestion means an answer arrived while no question was
	// outstanding. The session record is inconsistent and the request is
	// rejected rather than guessed at.
	ErrNoPendingQuestion = errors.New("no pending question for session")

	// ErrSessionCompleted means the interview already reached its terminal
	// state and accepts no further answers.
	ErrSessionCompleted = errors.New("interview session already completed")
)

// TextGenerator produces model output for a prompt. Implementations own
// their retry policy and signal exhaustion with an empty string instead of
// an error; the engine substitutes fallback text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// Engine holds the collaborators for one interview flow. It is stateless
// across calls; all session data lives in the SessionState it is handed.
type Engine struct {
	gen               TextGenerator
	keywordSearch     search.Provider
	retriever         search.SessionRetriever
	distanceThreshold float64
	topK              int
	logger            *log.Logger
}

func New(gen TextGenerator, keywordSearch search.Provider, retriever search.SessionRetriever, distanceThreshold float64, topK int, logger *log.Logger) *Engine {
	if distanceThreshold <= 0 {
		distanceThreshold = 0.55
	}
	if topK <= 0 {
		topK = 3
	}
	return &Engine{
		gen:               gen,
		keywordSearch:     keywordSearch,
		retriever:         retriever,
		distanceThreshold: distanceThreshold,
		topK:              topK,
		logger:            logger,
	}
}

// Start seeds the session's background context and asks the opening
// question. The session leaves Start awaiting its first answer.
func (e *Engine) Start(ctx context.Context, st *state.SessionState) error {
	seedQuery := fmt.Sprintf("key areas for interview on: %s", st.Topic)
	snippets := e.searchKeywords(ctx, seedQuery)
	st.AppendContext(snippets...)

	setupPrompt := prompt.Setup(e.contentText(st), st.Topic, st.IsBroad())
	question := e.gen.Generate(ctx, setupPrompt)
	if strings.TrimSpace(question) == "" {
		question = fmt.Sprintf("Tell me about your experience with %s.", st.Topic)
		e.logf("session %s: setup generation empty, using fallback question", st.SessionID)
	}

	st.PendingQuestion = question
	st.Messages = append(st.Messages,
		state.Message{Role: state.RoleUser, Content: st.Topic},
		state.Message{Role: state.RoleInterviewer, Content: question},
	)
	st.Status = state.StatusAwaitingAnswer
	return nil
}

// Submit processes one candidate answer: record the turn, acquire context,
// evaluate the turn, then either ask the next question or finalize.
func (e *Engine) Submit(ctx context.Context, st *state.SessionState, answer string) error {
	if st.Status == state.StatusCompleted {
		return ErrSessionCompleted
	}
	if st.PendingQuestion == "" {
		return ErrNoPendingQuestion
	}

	question := st.PendingQuestion
	st.PendingQuestion = ""
	st.Transcript = append(st.Transcript, state.Turn{Question: question, Answer: answer})
	st.Messages = append(st.Messages, state.Message{Role: state.RoleCandidate, Content: answer})
	st.AppendContext(fmt.Sprintf("Q: %s\nA: %s", question, answer))

	e.fetchTurnContext(ctx, st, question, answer)
	e.evaluateTurn(ctx, st, question, answer)
	st.Step++

	if st.Step < st.MaxSteps {
		e.askNextQuestion(ctx, st)
		return nil
	}

	e.finalize(ctx, st)
	return nil
}

// fetchTurnContext runs the retrieval decision for the just-answered turn.
// The answer is probed against the session's document index; a close enough
// match keeps the indexed snippets, anything else falls back to keyword
// search over topic + Q/A.
func (e *Engine) fetchTurnContext(ctx context.Context, st *state.SessionState, question, answer string) {
	st.RetrievalFlag = false
	st.SimilarityScore = nil

	if e.retriever != nil && st.HasCVIndex {
		res, err := e.retriever.Retrieve(ctx, st.SessionID, answer, e.topK)
		if err != nil {
			e.logf("session %s: retrieval failed, falling back to keyword search: %v", st.SessionID, err)
		} else if res.IndexExists {
			best := res.BestDistance
			st.SimilarityScore = &best
			if best < e.distanceThreshold {
				st.RetrievalFlag = true
				st.AppendContext(res.Snippets...)
				return
			}
		}
	}

	query := fmt.Sprintf("%s interview context: Q: %s A: %s", st.Topic, question, answer)
	st.AppendContext(e.searchKeywords(ctx, query)...)
}

// evaluateTurn scores the question and the answer independently and appends
// one feedback record for the turn.
func (e *Engine) evaluateTurn(ctx context.Context, st *state.SessionState, question, answer string) {
	fullMessages := e.messagesText(st)
	fullContent := e.contentText(st)
	history := transcript.Build(st.Transcript, st.Feedback)

	questionRaw := e.gen.Generate(ctx, prompt.Evaluation(prompt.KindQuestion, fullMessages, fullContent, history, question, answer))
	questionRating := parse.TurnRatingFrom(questionRaw)

	answerRaw := e.gen.Generate(ctx, prompt.Evaluation(prompt.KindAnswer, fullMessages, fullContent, history, question, answer))
	answerRating := parse.TurnRatingFrom(answerRaw)

	st.Feedback = append(st.Feedback, state.TurnFeedback{
		QuestionRating:   questionRating.Rating,
		QuestionFeedback: questionRating.Feedback,
		AnswerRating:     answerRating.Rating,
		AnswerFeedback:   answerRating.Feedback,
	})
}

func (e *Engine) askNextQuestion(ctx context.Context, st *state.SessionState) {
	instruction := prompt.Instruction(st.IsFollowup(), st.IsBroad(), st.LastAnswer())
	nextPrompt := prompt.NextQuestion(e.contentText(st), instruction, st.Topic, st.Step)

	question := e.gen.Generate(ctx, nextPrompt)
	if strings.TrimSpace(question) == "" {
		question = fmt.Sprintf("Tell me more about %s.", st.Topic)
		e.logf("session %s: question generation empty at step %d, using fallback", st.SessionID, st.Step)
	}

	st.PendingQuestion = question
	st.Messages = append(st.Messages, state.Message{Role: state.RoleInterviewer, Content: question})
	st.Status = state.StatusAwaitingAnswer
}

func (e *Engine) finalize(ctx context.Context, st *state.SessionState) {
	history := transcript.Build(st.Transcript, st.Feedback)
	raw := e.gen.Generate(ctx, prompt.FinalEvaluation(history))
	final := parse.FinalEvaluationFrom(raw)

	st.FinalEvaluation = &final
	st.PendingQuestion = ""
	st.Status = state.StatusCompleted
}

// searchKeywords never fails the flow; search errors degrade to no snippets.
func (e *Engine) searchKeywords(ctx context.Context, query string) []string {
	if e.keywordSearch == nil {
		return nil
	}
	snippets, err := e.keywordSearch.Search(ctx, query, e.topK)
	if err != nil {
		e.logf("keyword search failed: %v", err)
		return nil
	}
	return snippets
}

func (e *Engine) contentText(st *state.SessionState) string {
	return strings.Join(st.BackgroundContext, "\n")
}

func (e *Engine) messagesText(st *state.SessionState) string {
	var b strings.Builder
	for _, msg := range st.Messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf("[INFO] "+format, args...)
	}
}
