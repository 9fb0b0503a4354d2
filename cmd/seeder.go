package cmd

import (
	"fmt"
	"log"

	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "permit_requests", "employees", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Name  string
			Email string
			Role  string
		}{
			{"HR Admin", "hr@company.com", userDatamodel.RoleAdmin},
			{"HR Manager", "hrmanager@company.com", userDatamodel.RoleHR},
			{"Test Employee", "employee@company.com", userDatamodel.RoleEmployee},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("User already exists, skipping: %s\n", u.Email)
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				u.Name, u.Email, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		employees := []struct {
			EmployeeID string
			Name       string
			Department string
			Grade      string
			Email      string
		}{
			{"EMP001", "John Smith", "Engineering", "Senior Software Engineer", "john.smith@company.com"},
			{"EMP002", "Sarah Johnson", "Marketing", "Marketing Manager", "sarah.johnson@company.com"},
			{"EMP003", "Michael Brown", "Sales", "Sales Representative", "michael.brown@company.com"},
			{"EMP004", "Emily Davis", "HR", "HR Specialist", "emily.davis@company.com"},
			{"EMP005", "David Wilson", "Finance", "Financial Analyst", "david.wilson@company.com"},
			{"EMP006", "Lisa Anderson", "Engineering", "DevOps Engineer", "lisa.anderson@company.com"},
			{"EMP007", "Robert Taylor", "Operations", "Operations Manager", "robert.taylor@company.com"},
			{"EMP008", "Jennifer Martinez", "Design", "UI/UX Designer", "jennifer.martinez@company.com"},
		}

		for _, e := range employees {
			var exists int
			if err := db.Raw("SELECT 1 FROM employees WHERE employee_id = ?", e.EmployeeID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO employees (employee_id, name, department, grade, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				e.EmployeeID, e.Name, e.Department, e.Grade, e.Email,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.EmployeeID, err)
			}
			fmt.Printf("Seeded employee: %s (%s)\n", e.EmployeeID, e.Name)
		}

		fmt.Println("Seeding completed")
	},
}
