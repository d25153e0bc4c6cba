package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Professor is the role payload for a professor account. The row is keyed
// by the owning user's id, so profile and account share one identifier.
type Professor struct {
	UserID       string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	University   string    `gorm:"type:varchar(255)" json:"university"`
	Department   string    `gorm:"type:varchar(255)" json:"department"`
	ResearchArea string    `gorm:"type:text" json:"research_area"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Keywords     string    `gorm:"type:text" json:"keywords"` // JSON array, normalized
	Lab          string    `gorm:"type:varchar(255)" json:"lab,omitempty"`
	Publications string    `gorm:"type:text" json:"publications,omitempty"`
	Funding      string    `gorm:"type:varchar(255)" json:"funding,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Student is the role payload for a student account.
type Student struct {
	UserID       string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Degree       string    `gorm:"type:varchar(255)" json:"degree"`
	University   string    `gorm:"type:varchar(255)" json:"university"`
	Department   string    `gorm:"type:varchar(255)" json:"department"`
	ResearchArea string    `gorm:"type:text" json:"research_area"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Keywords     string    `gorm:"type:text" json:"keywords"`
	Advisor      string    `gorm:"type:varchar(255)" json:"advisor,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeKeywords lower-cases, trims and deduplicates a keyword list,
// preserving first-seen order.
func NormalizeKeywords(raw []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// EncodeKeywords serializes a normalized keyword list for storage.
func EncodeKeywords(raw []string) string {
	data, err := json.Marshal(NormalizeKeywords(raw))
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeKeywords parses a stored keyword column. Bad or empty data
// decodes as an empty list.
func DecodeKeywords(stored string) []string {
	if stored == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(stored), &out); err != nil {
		return nil
	}
	return out
}
