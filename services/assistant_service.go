package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/llm"
	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

// AssistantService answers free-text questions about one profile. LLM
// failures degrade to a templated heuristic answer; a missing profile is
// reported through the found flag, never as an error.
type AssistantService struct {
	DB  *gorm.DB
	LLM llm.Client
}

func NewAssistantService(db *gorm.DB, client llm.Client) *AssistantService {
	return &AssistantService{DB: db, LLM: client}
}

// Answer resolves the profile, builds a context summary and asks the LLM.
func (s *AssistantService) Answer(ctx context.Context, profileID, profileType, query string) (string, bool) {
	summary, name, found := s.profileSummary(profileID, profileType)
	if !found {
		return "I could not find that profile. It may have been removed or the id is wrong.", false
	}

	if s.LLM != nil && s.LLM.Enabled() {
		prompt := fmt.Sprintf(`You are a helpful assistant for an academic matchmaking platform. Answer the question using only the profile below. Be concise and factual.

Profile:
%s

Question: %s`, summary, query)

		answer, err := s.LLM.GenerateText(ctx, prompt)
		if err == nil && strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer), true
		}
		if err != nil {
			utils.ErrorLogger.Printf("chat assistant: llm call failed, using canned answer: %v", err)
		}
	}

	return cannedAnswer(name, summary, query), true
}

func (s *AssistantService) profileSummary(profileID, profileType string) (summary, name string, found bool) {
	switch profileType {
	case "student":
		var st models.Student
		if err := s.DB.First(&st, "user_id = ?", profileID).Error; err != nil {
			return "", "", false
		}
		return fmt.Sprintf("Name: %s\nDegree: %s\nUniversity: %s\nDepartment: %s\nResearch area: %s\nBio: %s\nKeywords: %s",
			st.Name, st.Degree, st.University, st.Department, st.ResearchArea, st.Bio,
			strings.Join(models.DecodeKeywords(st.Keywords), ", ")), st.Name, true
	default:
		var prof models.Professor
		if err := s.DB.First(&prof, "user_id = ?", profileID).Error; err != nil {
			return "", "", false
		}
		return fmt.Sprintf("Name: %s\nTitle: %s\nUniversity: %s\nDepartment: %s\nResearch area: %s\nBio: %s\nLab: %s\nKeywords: %s",
			prof.Name, prof.Title, prof.University, prof.Department, prof.ResearchArea, prof.Bio, prof.Lab,
			strings.Join(models.DecodeKeywords(prof.Keywords), ", ")), prof.Name, true
	}
}

// cannedAnswer is the deterministic degradation path: a short templated
// reply built from the profile fields that mention the query.
func cannedAnswer(name, summary, query string) string {
	needle := strings.ToLower(strings.TrimSpace(query))
	var relevant []string
	for _, line := range strings.Split(summary, "\n") {
		if needle != "" && strings.Contains(strings.ToLower(line), needle) {
			relevant = append(relevant, line)
		}
	}
	if len(relevant) > 0 {
		return fmt.Sprintf("Based on %s's profile: %s", name, strings.Join(relevant, "; "))
	}
	return fmt.Sprintf("Here is what is on record for %s:\n%s", name, summary)
}
