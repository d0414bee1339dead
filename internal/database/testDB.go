package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported seeded accounts and records for tests
var (
	TestAdminUser  m.User
	TestCandidate1 m.User
	TestCandidate2 m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User

	// TestSeedPassword is the plaintext password of every seeded account
	TestSeedPassword = "SeedPass123!"

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job

	TestCompany1 m.Company
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample accounts, jobs and a company if not present.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Where("email LIKE ?", "%@test.skillsync").Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashed, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []*m.User{
		{Name: "Seed Admin", Email: "admin@test.skillsync", Password: hashed, Role: m.RoleAdmin},
		{Name: "Candidate One", Email: "candidate1@test.skillsync", Password: hashed, Role: m.RoleCandidate, Skills: []string{"react", "node"}},
		{Name: "Candidate Two", Email: "candidate2@test.skillsync", Password: hashed, Role: m.RoleCandidate},
		{Name: "Recruiter One", Email: "recruiter1@test.skillsync", Password: hashed, Role: m.RoleRecruiter},
		{Name: "Recruiter Two", Email: "recruiter2@test.skillsync", Password: hashed, Role: m.RoleRecruiter},
	}
	for _, u := range users {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}
	TestAdminUser = *users[0]
	TestCandidate1 = *users[1]
	TestCandidate2 = *users[2]
	TestRecruiter1 = *users[3]
	TestRecruiter2 = *users[4]

	jobs := []*m.Job{
		{Title: "React Developer", Company: "Acme", Location: "Remote", Salary: "50k", Description: "Frontend work", RequiredSkills: []string{"react", "redux", "css"}, PostedByID: TestRecruiter1.ID},
		{Title: "Office Manager", Company: "Acme", Location: "Berlin", Salary: "40k", Description: "No tech skills listed", RequiredSkills: []string{}, PostedByID: TestRecruiter1.ID},
		{Title: "Go Backend Engineer", Company: "Globex", Location: "Remote", Salary: "70k", Description: "Backend work", RequiredSkills: []string{"go", "postgres"}, PostedByID: TestRecruiter2.ID},
	}
	for _, j := range jobs {
		if err := db.Create(j).Error; err != nil {
			return err
		}
	}
	TestJob1 = *jobs[0]
	TestJob2 = *jobs[1]
	TestJob3 = *jobs[2]

	TestCompany1 = m.Company{
		Name:        "Acme",
		Location:    "Berlin",
		Website:     "https://acme.example",
		Description: "Seeded test company",
		RecruiterID: TestRecruiter1.ID,
	}
	if err := db.Create(&TestCompany1).Error; err != nil {
		return err
	}

	return nil
}

// loadTestData reloads seeded rows into the exported variables when the
// container is reused across test packages.
func loadTestData(db *DBinstanceStruct) error {
	lookups := []struct {
		email string
		dst   *m.User
	}{
		{"admin@test.skillsync", &TestAdminUser},
		{"candidate1@test.skillsync", &TestCandidate1},
		{"candidate2@test.skillsync", &TestCandidate2},
		{"recruiter1@test.skillsync", &TestRecruiter1},
		{"recruiter2@test.skillsync", &TestRecruiter2},
	}
	for _, l := range lookups {
		if err := db.Where("email = ?", l.email).First(l.dst).Error; err != nil {
			return err
		}
	}

	jobLookups := []struct {
		title string
		dst   *m.Job
	}{
		{"React Developer", &TestJob1},
		{"Office Manager", &TestJob2},
		{"Go Backend Engineer", &TestJob3},
	}
	for _, l := range jobLookups {
		if err := db.Where("title = ?", l.title).First(l.dst).Error; err != nil {
			return err
		}
	}

	return db.Where("recruiter_id = ?", TestRecruiter1.ID).First(&TestCompany1).Error
}
