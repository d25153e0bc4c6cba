package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/acadmatch/academic-matchmaker/llm"
	"github.com/acadmatch/academic-matchmaker/utils"
)

// ErrInvalidQuery is returned for queries shorter than 3 characters after
// trimming. No LLM or database call happens in that case.
var ErrInvalidQuery = errors.New("query must be at least 3 characters")

const (
	maxResults = 3

	// Pools above this size are pre-filtered with the keyword matcher
	// before being placed into the prompt.
	maxPromptCandidates = 200

	// Similarity assigned by the deterministic fallback.
	fallbackScore = 0.75

	// Similarity used when the LLM omits or mangles the score.
	defaultScore = 0.7
)

// Candidate is the projection of a profile used for ranking.
type Candidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	University   string   `json:"university"`
	ResearchArea string   `json:"researchArea"`
	Bio          string   `json:"bio"`
	Keywords     []string `json:"keywords,omitempty"`
}

// Result is one ranked match. Results are ephemeral; nothing here is
// persisted between queries.
type Result struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Title           string  `json:"title"`
	University      string  `json:"university"`
	ResearchArea    string  `json:"researchArea"`
	Justification   string  `json:"justification"`
	SimilarityScore float64 `json:"similarityScore"`
}

// Pipeline ranks candidates against a free-text query, asking the LLM first
// and falling back to keyword containment when it fails.
type Pipeline struct {
	LLM llm.Client
}

func NewPipeline(client llm.Client) *Pipeline {
	return &Pipeline{LLM: client}
}

// Rank returns at most 3 matches for the query. LLM transport errors,
// timeouts and malformed output all degrade to the deterministic fallback;
// the only user-facing error is ErrInvalidQuery.
func (p *Pipeline) Rank(ctx context.Context, query string, role string, pool []Candidate) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 3 {
		return nil, ErrInvalidQuery
	}
	if len(pool) == 0 {
		return []Result{}, nil
	}

	promptPool := pool
	if len(pool) > maxPromptCandidates {
		promptPool = prefilter(trimmed, pool)
	}

	if p.LLM == nil || !p.LLM.Enabled() {
		return fallbackRank(trimmed, pool), nil
	}

	raw, err := p.LLM.GenerateText(ctx, buildPrompt(trimmed, role, promptPool))
	if err != nil {
		utils.ErrorLogger.Printf("smart match: llm call failed, using fallback: %v", err)
		return fallbackRank(trimmed, pool), nil
	}

	results, err := parseResults(raw)
	if err != nil {
		utils.ErrorLogger.Printf("smart match: unparsable llm response, using fallback: %v", err)
		return fallbackRank(trimmed, pool), nil
	}

	return normalize(results), nil
}

// prefilter narrows an oversized pool with the keyword matcher. When
// nothing matches, the head of the pool is used so the prompt is never
// empty.
func prefilter(query string, pool []Candidate) []Candidate {
	matched := filterByKeyword(query, pool)
	if len(matched) == 0 {
		matched = pool
	}
	if len(matched) > maxPromptCandidates {
		matched = matched[:maxPromptCandidates]
	}
	return matched
}

// rawResult tolerates the score arriving as a number, a quoted number, or
// garbage.
type rawResult struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Title           string      `json:"title"`
	University      string      `json:"university"`
	ResearchArea    string      `json:"researchArea"`
	Justification   string      `json:"justification"`
	SimilarityScore interface{} `json:"similarityScore"`
}

func parseResults(raw string) ([]rawResult, error) {
	cleaned := stripCodeFence(raw)

	var results []rawResult
	if err := json.Unmarshal([]byte(cleaned), &results); err == nil {
		return results, nil
	}

	// Some models wrap the array in prose; retry on the bracketed slice.
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON array in response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// stripCodeFence removes a surrounding ``` or ```json block if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalize(raw []rawResult) []Result {
	out := make([]Result, 0, maxResults)
	for _, r := range raw {
		if len(out) == maxResults {
			break
		}
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, Result{
			ID:              id,
			Name:            r.Name,
			Title:           r.Title,
			University:      r.University,
			ResearchArea:    r.ResearchArea,
			Justification:   r.Justification,
			SimilarityScore: coerceScore(r.SimilarityScore),
		})
	}
	return out
}

// coerceScore clamps the similarity to [0,1], defaulting when the value is
// missing or unparsable.
func coerceScore(v interface{}) float64 {
	var score float64
	switch val := v.(type) {
	case float64:
		score = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return defaultScore
		}
		score = parsed
	default:
		return defaultScore
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
