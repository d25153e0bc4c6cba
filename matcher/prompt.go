package matcher

import (
	"encoding/json"
	"fmt"
)

// buildPrompt packs the candidate pool into a single instruction asking for
// a strictly-JSON ranking. The model is told to return nothing but the
// array so parsing stays simple.
func buildPrompt(query string, role string, pool []Candidate) string {
	candidateNoun := "professors"
	seekerNoun := "student"
	if role == "professor" {
		candidateNoun = "students"
		seekerNoun = "professor"
	}

	poolJSON, err := json.Marshal(pool)
	if err != nil {
		poolJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are an academic matchmaking assistant. A %s is searching for %s with this query:

"%s"

Here are the available %s as a JSON array:

%s

Select exactly the 3 best matches for the query. For each match explain in one or two sentences why it fits.

Return ONLY a valid JSON array (no markdown, no code fences, no text before or after) of objects with exactly these keys:
[{"id": string, "name": string, "title": string, "university": string, "researchArea": string, "justification": string, "similarityScore": number between 0 and 1}]

Order the array by similarityScore descending. Use only candidates from the list above and copy their id values unchanged.`,
		seekerNoun, candidateNoun, query, candidateNoun, string(poolJSON))
}
