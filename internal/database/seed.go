package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

// EnsureAdmin creates an admin account with the given credentials. An account
// that already holds the email is left untouched.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utilities.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:     "Admin",
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// fallbackJobs is the fixed set inserted when the job table is empty, so the
// very first feed request never renders an empty board.
var fallbackJobs = []model.Job{
	{Title: "Software Engineer III", Company: "Google", Location: "Bangalore", Salary: "₹35L - ₹50L", Description: "Google Cloud infra.", RequiredSkills: []string{"Go", "Kubernetes", "Distributed Systems"}},
	{Title: "Frontend Developer", Company: "Netflix", Location: "Remote", Salary: "₹45L", Description: "Netflix TV UI.", RequiredSkills: []string{"React", "JavaScript", "Performance"}},
	{Title: "SDE-2 (Backend)", Company: "Amazon", Location: "Hyderabad", Salary: "₹38L", Description: "Amazon Pay systems.", RequiredSkills: []string{"Java", "DynamoDB", "AWS"}},
	{Title: "Product Designer", Company: "Airbnb", Location: "Remote", Salary: "₹25L", Description: "Design experiences.", RequiredSkills: []string{"Figma", "UI/UX"}},
	{Title: "Full Stack Engineer", Company: "Zomato", Location: "Gurugram", Salary: "₹22L", Description: "Order systems.", RequiredSkills: []string{"Node.js", "React", "MongoDB"}},
	{Title: "Data Scientist", Company: "Microsoft", Location: "Bangalore", Salary: "₹40L", Description: "Azure AI.", RequiredSkills: []string{"Python", "PyTorch", "Azure"}},
}

// SeedFallbackJobs inserts the fallback job set when no job rows exist yet.
// The jobs are assigned to an admin account, or failing that any account, so
// they are not orphaned. With no users at all nothing is seeded. The returned
// slice holds the freshly inserted jobs, or nil when seeding was not needed.
func SeedFallbackJobs(db *gorm.DB) ([]model.Job, error) {
	var jobCount int64
	if err := db.Model(&model.Job{}).Count(&jobCount).Error; err != nil {
		return nil, err
	}
	if jobCount > 0 {
		return nil, nil
	}

	var owner model.User
	err := db.Where("role = ?", model.RoleAdmin).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.First(&owner).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("No users found, cannot seed fallback jobs")
		return []model.Job{}, nil
	}
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, len(fallbackJobs))
	copy(jobs, fallbackJobs)
	for i := range jobs {
		jobs[i].PostedByID = owner.ID
	}

	if err := db.Create(&jobs).Error; err != nil {
		return nil, err
	}
	log.Printf("Seeded %d fallback jobs", len(jobs))
	return jobs, nil
}
