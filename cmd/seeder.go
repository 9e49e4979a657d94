package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"job_applications", "job_postings", "hr_profiles", "employee_profiles", "company_profiles", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminID := seedUser(db, "admin", "admin@board.local", string(hash), "admin")
		fmt.Println("Seeded admin user id:", adminID)

		companyID := seedUser(db, "acme", "jobs@acme.example", string(hash), "company")
		var companyProfileID int64
		if err := db.Raw("SELECT id FROM company_profiles WHERE user_id = ?", companyID).Row().Scan(&companyProfileID); err != nil {
			if err := db.Exec("INSERT INTO company_profiles (user_id, company_name, industry, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				companyID, "Acme Corp", "software").Error; err != nil {
				log.Fatalf("failed to insert company profile: %v", err)
			}
			fmt.Println("Seeded company profile for acme")
		}

		employeeID := seedUser(db, "jane", "jane@mail.example", string(hash), "employee")
		var exists int
		if err := db.Raw("SELECT 1 FROM employee_profiles WHERE user_id = ?", employeeID).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO employee_profiles (user_id, bio, location, skills, resume_handle, resume_filename, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
				employeeID, "Backend engineer", "Jakarta", "go, sql, docker", "resumes/jane.pdf", "jane-cv.pdf").Error; err != nil {
				log.Fatalf("failed to insert employee profile: %v", err)
			}
			fmt.Println("Seeded employee profile for jane")
		}

		postings := []struct {
			Title    string
			Domain   string
			JobType  string
			Level    string
			Location string
		}{
			{"Backend Engineer", "engineering", "full_time", "mid", "Jakarta"},
			{"Data Analyst", "data", "full_time", "entry", "Remote"},
			{"DevOps Engineer", "engineering", "contract", "senior", "Bandung"},
		}

		for _, p := range postings {
			var exists int
			row := db.Raw("SELECT 1 FROM job_postings WHERE company_user_id = ? AND title = ?", companyID, p.Title).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO job_postings (company_user_id, title, description, domain, job_type, experience_level, location, deadline, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, now() + interval '30 days', true, now(), now())",
					companyID, p.Title, "Join Acme Corp as a "+p.Title+".", p.Domain, p.JobType, p.Level, p.Location).Error; err != nil {
					log.Fatalf("failed to insert posting %s: %v", p.Title, err)
				}
				fmt.Printf("Seeded posting: %s\n", p.Title)
			}
		}

		fmt.Println("Sample data seeded successfully")
	},
}

func seedUser(db *gorm.DB, username, email, passwordHash, role string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE username = ?", username).Row().Scan(&id); err == nil {
		fmt.Printf("user %s already exists\n", username)
		return id
	}

	if err := db.Exec("INSERT INTO users (username, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
		username, email, passwordHash, role).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", username, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE username = ?", username).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user %s: %v", username, err)
	}
	return id
}
