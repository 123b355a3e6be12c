package judge

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Together exposes an OpenAI-compatible chat completions endpoint, so the
// stock client works against it with a swapped base URL.
const (
	DefaultBaseURL = "https://api.together.xyz/v1"
	DefaultModel   = "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo"

	maxTokens      = 200
	temperature    = 0.8
	requestTimeout = 20 * time.Second
)

const persona = "You're a hilarious, witty judge for a tech team game called 'Explain It Like I'm 5'. " +
	"Your job is to give funny, entertaining feedback on team explanations of tech concepts. " +
	"Be playful, use emojis, make jokes, but keep it professional and PG-rated. " +
	"Always pick a winner and explain why in a humorous way. " +
	"Keep your response engaging and not too long - think of it as entertaining commentary that will make people laugh!"

// fallbackLines stand in for the judge whenever the collaborator can't be
// reached. Judging must never fail the round.
var fallbackLines = []string{
	"The AI judge is having coffee! ☕ Both teams did great - you decide the winner!",
	"The judge's wifi went out mid-deliberation! 📡 Call it a tie and play another round!",
	"Our judge is speechless - literally. 🤖 Both explanations were too good to pick apart!",
}

// Input carries everything the judge sees about a finished round.
type Input struct {
	Term             string
	Team1Name        string
	Team2Name        string
	Team1Explanation string
	Team2Explanation string
}

// Judge produces feedback text for a round. Implementations must always
// return a non-empty string.
type Judge interface {
	Feedback(ctx context.Context, in Input) string
}

// AIJudge asks the text-generation collaborator for commentary, degrading
// to a canned line on any failure. One attempt per round, no retries.
type AIJudge struct {
	client   *openai.Client
	model    string
	fallback atomic.Uint64
}

// New builds a judge. An empty apiKey yields a judge that only ever
// answers with fallback lines, which keeps local setups working.
func New(apiKey, baseURL, model string) *AIJudge {
	j := &AIJudge{model: model}
	if j.model == "" {
		j.model = DefaultModel
	}
	if apiKey == "" {
		log.Warn().Msg("judge: no API key configured, using fallback feedback only")
		return j
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	j.client = openai.NewClientWithConfig(cfg)
	return j
}

func (j *AIJudge) Feedback(ctx context.Context, in Input) string {
	if j.client == nil {
		return j.nextFallback()
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: persona},
			{Role: openai.ChatMessageRoleUser, Content: prompt(in)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		log.Error().Err(err).Msg("judge: completion request failed")
		return j.nextFallback()
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Error().Msg("judge: empty completion response")
		return j.nextFallback()
	}
	return resp.Choices[0].Message.Content
}

func (j *AIJudge) nextFallback() string {
	n := j.fallback.Add(1) - 1
	return fallbackLines[n%uint64(len(fallbackLines))]
}

func prompt(in Input) string {
	return fmt.Sprintf("Two teams explained %q:\nTeam %s: %q\nTeam %s: %q\nGive funny, short feedback and decide the winner!",
		in.Term, in.Team1Name, in.Team1Explanation, in.Team2Name, in.Team2Explanation)
}
