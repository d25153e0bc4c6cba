package matcher

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acadmatch/academic-matchmaker/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// stubLLM records calls and replays a canned response or error.
type stubLLM struct {
	response string
	err      error
	disabled bool
	calls    int
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) Enabled() bool { return !s.disabled }

func testPool() []Candidate {
	return []Candidate{
		{ID: "p1", Name: "Alice Moore", Title: "Professor", University: "Stanford", ResearchArea: "computer vision"},
		{ID: "p2", Name: "Bob Tran", Title: "Professor", University: "MIT", ResearchArea: "databases"},
		{ID: "p3", Name: "Carol Diaz", Title: "Associate Professor", University: "CMU", ResearchArea: "robotics", Bio: "healthcare ML applied to rehab robotics"},
		{ID: "p4", Name: "Dan Wu", Title: "Professor", University: "Berkeley", ResearchArea: "PL theory"},
		{ID: "p5", Name: "Eve Park", Title: "Lecturer", University: "UW", ResearchArea: "HCI"},
	}
}

func TestRankRejectsShortQuery(t *testing.T) {
	llm := &stubLLM{}
	p := NewPipeline(llm)

	for _, q := range []string{"", "  ", "ab", " a "} {
		results, err := p.Rank(context.Background(), q, "student", testPool())
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.Nil(t, results)
	}
	// Precondition failures must not reach the LLM
	assert.Equal(t, 0, llm.calls)
}

func TestRankEmptyPool(t *testing.T) {
	llm := &stubLLM{}
	p := NewPipeline(llm)

	results, err := p.Rank(context.Background(), "machine learning", "student", nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, llm.calls)
}

func TestFallbackMatchesHealthcareScenario(t *testing.T) {
	p := NewPipeline(&stubLLM{disabled: true})

	query := "healthcare ML"
	results, err := p.Rank(context.Background(), query, "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "p3", results[0].ID)
	assert.GreaterOrEqual(t, results[0].SimilarityScore, 0.7)
	assert.LessOrEqual(t, results[0].SimilarityScore, 0.8)
	assert.Contains(t, results[0].Justification, query)
}

func TestFallbackMatchesSingleQueryTerm(t *testing.T) {
	p := NewPipeline(&stubLLM{disabled: true})

	// The only relevant candidate sits last, past the pool head, and its
	// bio shares just one term with the query.
	pool := []Candidate{
		{ID: "m1", Name: "Ana Ba", ResearchArea: "compilers"},
		{ID: "m2", Name: "Ben Cole", ResearchArea: "storage engines"},
		{ID: "m3", Name: "Cam Dietz", ResearchArea: "networking"},
		{ID: "m4", Name: "Dee Egan", ResearchArea: "type systems"},
		{ID: "m5", Name: "Eli Fox", ResearchArea: "rehabilitation robotics", Bio: "healthcare ML"},
	}

	query := "machine learning for healthcare"
	results, err := p.Rank(context.Background(), query, "student", pool)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "m5", results[0].ID)
	assert.GreaterOrEqual(t, results[0].SimilarityScore, 0.7)
	assert.LessOrEqual(t, results[0].SimilarityScore, 0.8)
	assert.Contains(t, results[0].Justification, query)
}

func TestFilterByKeywordRanksWholeMatchFirst(t *testing.T) {
	pool := []Candidate{
		{ID: "partial", Bio: "applied healthcare analytics"},
		{ID: "whole", Bio: "machine learning for healthcare delivery"},
	}

	matched := filterByKeyword("machine learning for healthcare", pool)
	assert.Len(t, matched, 2)
	assert.Equal(t, "whole", matched[0].ID)
	assert.Equal(t, "partial", matched[1].ID)
}

func TestFallbackNoMatchReturnsPoolHead(t *testing.T) {
	p := NewPipeline(&stubLLM{disabled: true})

	results, err := p.Rank(context.Background(), "quantum cryptography", "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "p1", results[0].ID)
	assert.Equal(t, "p2", results[1].ID)
	assert.Equal(t, "p3", results[2].ID)
}

func TestFallbackIsDeterministic(t *testing.T) {
	p := NewPipeline(&stubLLM{disabled: true})

	first, err := p.Rank(context.Background(), "databases", "student", testPool())
	assert.NoError(t, err)
	second, err := p.Rank(context.Background(), "databases", "student", testPool())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRankFallsBackOnLLMError(t *testing.T) {
	llm := &stubLLM{err: errors.New("upstream timeout")}
	p := NewPipeline(llm)

	results, err := p.Rank(context.Background(), "databases", "student", testPool())
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.Len(t, results, 1)
	assert.Equal(t, "p2", results[0].ID)
	assert.Equal(t, fallbackScore, results[0].SimilarityScore)
}

func TestRankFallsBackOnGarbageResponse(t *testing.T) {
	p := NewPipeline(&stubLLM{response: "sorry, I cannot help with that"})

	results, err := p.Rank(context.Background(), "computer vision", "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
}

func TestRankParsesFencedJSON(t *testing.T) {
	p := NewPipeline(&stubLLM{response: "```json\n[{\"id\":\"p2\",\"name\":\"Bob Tran\",\"title\":\"Professor\",\"university\":\"MIT\",\"researchArea\":\"databases\",\"justification\":\"Strong overlap\",\"similarityScore\":0.92}]\n```"})

	results, err := p.Rank(context.Background(), "databases", "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "p2", results[0].ID)
	assert.Equal(t, 0.92, results[0].SimilarityScore)
}

func TestRankNormalizesResults(t *testing.T) {
	// Missing id, score as string, score out of range, and a fourth entry
	// that must be dropped.
	resp := `[
		{"name":"No Id","similarityScore":0.5},
		{"id":"p2","name":"Bob","similarityScore":"0.85"},
		{"id":"p1","name":"Alice","similarityScore":7},
		{"id":"p4","name":"Dan","similarityScore":0.1}
	]`
	p := NewPipeline(&stubLLM{response: resp})

	results, err := p.Rank(context.Background(), "anything at all", "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.NotEmpty(t, results[0].ID)
	assert.Equal(t, 0.5, results[0].SimilarityScore)
	assert.Equal(t, 0.85, results[1].SimilarityScore)
	assert.Equal(t, 1.0, results[2].SimilarityScore)
}

func TestRankDefaultsMissingScore(t *testing.T) {
	p := NewPipeline(&stubLLM{response: `[{"id":"p1","name":"Alice"}]`})

	results, err := p.Rank(context.Background(), "computer vision", "student", testPool())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, defaultScore, results[0].SimilarityScore)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("```\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("[1]"))
}

func TestPrefilterCapsOversizedPool(t *testing.T) {
	big := make([]Candidate, 500)
	for i := range big {
		big[i] = Candidate{ID: "c", Name: "generic"}
	}
	big[450].ResearchArea = "underwater acoustics"

	narrowed := prefilter("underwater acoustics", big)
	assert.Len(t, narrowed, 1)

	// Nothing matches: capped head of the pool
	narrowed = prefilter("zzz-no-match", big)
	assert.Len(t, narrowed, maxPromptCandidates)
}
