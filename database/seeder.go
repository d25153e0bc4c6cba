package database

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

// SeedDemoData populates an empty database with a handful of profiles so
// smart match and the feed have something to show on first run. A
// non-empty professors table skips seeding entirely.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Professor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	professors := []models.Professor{
		{
			Name: "Elena Vasquez", Title: "Professor", University: "Stanford University",
			Department: "Computer Science", ResearchArea: "Machine learning for healthcare ML diagnostics",
			Bio:      "Works on clinical prediction models and healthcare ML deployment.",
			Keywords: models.EncodeKeywords([]string{"machine learning", "healthcare", "clinical AI"}),
			Lab:      "Health AI Lab",
		},
		{
			Name: "Marcus Chen", Title: "Associate Professor", University: "MIT",
			Department: "EECS", ResearchArea: "Distributed systems and storage engines",
			Bio:      "Consistency protocols, replicated logs, large-scale storage.",
			Keywords: models.EncodeKeywords([]string{"distributed systems", "storage", "consensus"}),
		},
		{
			Name: "Priya Raman", Title: "Assistant Professor", University: "CMU",
			Department: "Robotics Institute", ResearchArea: "Robot learning and manipulation",
			Bio:      "Reinforcement learning for dexterous manipulation.",
			Keywords: models.EncodeKeywords([]string{"robotics", "reinforcement learning"}),
		},
	}
	for i := range professors {
		professors[i].UserID = uuid.NewString()
		if err := db.Create(&professors[i]).Error; err != nil {
			return err
		}
	}

	students := []models.Student{
		{
			Name: "Jordan Lee", Degree: "MS candidate", University: "UC Berkeley",
			Department: "Computer Science", ResearchArea: "Applied machine learning",
			Bio:      "Interested in ML applications in medicine.",
			Keywords: models.EncodeKeywords([]string{"machine learning", "healthcare"}),
		},
		{
			Name: "Aisha Okafor", Degree: "PhD candidate", University: "University of Washington",
			Department: "CSE", ResearchArea: "Systems and databases",
			Bio:      "Query engines and transactional storage.",
			Keywords: models.EncodeKeywords([]string{"databases", "systems"}),
		},
	}
	for i := range students {
		students[i].UserID = uuid.NewString()
		if err := db.Create(&students[i]).Error; err != nil {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:       uuid.NewString(),
		Name:     "Admin",
		Email:    "admin@acadmatch.local",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded demo data: %d professors, %d students, 1 admin",
		len(professors), len(students))
	return nil
}
