package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"graphqa-service/interfaces"
	"graphqa-service/logging"
	"graphqa-service/models"
)

const defaultTopK = 100

// CypherQAChain translates a question into Cypher with an LLM, executes it
// against the graph, and phrases a grounded answer from the rows. The
// generated query and its rows are reported as intermediate steps so the
// caller can drive visualization from them.
type CypherQAChain struct {
	llm          llms.Model
	graph        interfaces.GraphExecutor
	topK         int
	cypherPrompt prompts.PromptTemplate
	answerPrompt prompts.PromptTemplate
}

type Option func(*CypherQAChain)

// WithTopK caps how many result rows are fed into the answer prompt.
func WithTopK(k int) Option {
	return func(c *CypherQAChain) {
		if k > 0 {
			c.topK = k
		}
	}
}

func New(llm llms.Model, graph interfaces.GraphExecutor, opts ...Option) *CypherQAChain {
	c := &CypherQAChain{
		llm:          llm,
		graph:        graph,
		topK:         defaultTopK,
		cypherPrompt: newCypherPrompt(),
		answerPrompt: newAnswerPrompt(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke runs the two-step chain once. Errors from the LLM or the store
// propagate to the caller untouched; classification happens there.
func (c *CypherQAChain) Invoke(ctx context.Context, question string) (*models.ChainResult, error) {
	prompt, err := c.cypherPrompt.Format(map[string]any{
		"schema":   c.graph.Schema(),
		"question": question,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting cypher prompt: %w", err)
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("generating cypher: %w", err)
	}

	cypher := ExtractCypher(raw)
	if cypher == "" {
		logging.Logger.Warnf("LLM produced no usable Cypher for question: %s", question)
		return &models.ChainResult{Answer: "No answer found."}, nil
	}
	logging.Logger.Infof("Generated Cypher: %s", cypher)

	result := &models.ChainResult{}
	result.Steps = append(result.Steps, models.ChainStep{Query: cypher})

	rows, err := c.graph.Query(ctx, cypher)
	if err != nil {
		return nil, err
	}
	if len(rows) > c.topK {
		rows = rows[:c.topK]
	}
	result.Steps = append(result.Steps, models.ChainStep{Context: rows})

	answerPrompt, err := c.answerPrompt.Format(map[string]any{
		"context":  formatContext(rows),
		"question": question,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting answer prompt: %w", err)
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, answerPrompt, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	result.Answer = strings.TrimSpace(answer)
	return result, nil
}

var codeFencePattern = regexp.MustCompile("(?s)```(?:[Cc]ypher)?\\s*(.*?)```")

// ExtractCypher strips the decoration LLMs add despite instructions: code
// fences, a leading "Cypher:" tag, trailing semicolons and periods.
func ExtractCypher(text string) string {
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Cypher:")
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, ";.")
	return strings.TrimSpace(text)
}

// formatContext renders rows the way the answer prompt's examples show
// them: a JSON list of row objects.
func formatContext(rows []map[string]any) string {
	if len(rows) == 0 {
		return "[]"
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Sprintf("%v", rows)
	}
	return string(data)
}
