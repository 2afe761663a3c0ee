package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type leaveTypeSeed struct {
	Name             string
	Description      string
	PayPercentage    int
	BlockDays        int
	Period           *int
	AllowedBlocks    *int
	DaysAllowedAfter int64
	PrerequisiteName string
	Dividable        bool
	Accumulated      bool
	GenderStrict     *int16
	Fallback         bool
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with departments, leave types and an admin user for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"employee_transaction_logs", "employee_leaves", "users", "employees", "leaves", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedDepartments(db)
		seedLeaveTypes(db)
		seedAdminUser(db, cfg.Security.BCryptCost)
		seedEmployees(db, cfg.Security.BCryptCost)

		fmt.Println("Seeding complete")
	},
}

func seedDepartments(db *gorm.DB) {
	departments := []string{"Engineering", "Human Resources", "Finance", "Operations"}

	for _, name := range departments {
		var exists int
		row := db.Raw("SELECT 1 FROM departments WHERE name = ?", name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO departments (name, is_active, created_at, updated_at) VALUES (?, true, now(), now())", name).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", name, err)
		}
		fmt.Printf("Seeded department: %s\n", name)
	}
}

func seedLeaveTypes(db *gorm.DB) {
	year := 365
	one := 1
	three := 3
	female := int16(0)

	seeds := []leaveTypeSeed{
		{Name: "Annual Leave", Description: "Yearly paid leave, accrued over the service year", PayPercentage: 100, BlockDays: 30, Period: &year, AllowedBlocks: &one, DaysAllowedAfter: 180, Dividable: true, Accumulated: true},
		{Name: "Sick Leave Tier 1", Description: "Fully paid sick leave", PayPercentage: 100, BlockDays: 15, Period: &year, Dividable: true},
		{Name: "Sick Leave Tier 2", Description: "Sick leave at reduced pay after tier 1 is exhausted", PayPercentage: 75, BlockDays: 15, Period: &year, PrerequisiteName: "Sick Leave Tier 1", Dividable: true},
		{Name: "Sick Leave Tier 3", Description: "Sick leave at half pay after tier 2 is exhausted", PayPercentage: 50, BlockDays: 15, Period: &year, PrerequisiteName: "Sick Leave Tier 2", Dividable: true},
		{Name: "Sick Leave Tier 4", Description: "Unpaid sick leave after tier 3 is exhausted", PayPercentage: 0, BlockDays: 15, Period: &year, PrerequisiteName: "Sick Leave Tier 3", Dividable: true},
		{Name: "Maternity Leave", Description: "Maternity leave, whole blocks over the service period", PayPercentage: 100, BlockDays: 90, AllowedBlocks: &three, GenderStrict: &female},
		{Name: "Condolence Leave", Description: "Bereavement leave", PayPercentage: 100, BlockDays: 3, Period: &year},
		{Name: "Haj Leave", Description: "Pilgrimage leave, once per service year", PayPercentage: 100, BlockDays: 5, Period: &year, AllowedBlocks: &one},
		{Name: "Unpaid Leave", Description: "Catch-all unpaid leave, no eligibility rules", PayPercentage: 0, BlockDays: 30, Fallback: true, Dividable: true},
	}

	for _, s := range seeds {
		var exists int
		row := db.Raw("SELECT 1 FROM leaves WHERE name = ?", s.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		var prerequisiteID *int64
		if s.PrerequisiteName != "" {
			var pid int64
			if err := db.Raw("SELECT id FROM leaves WHERE name = ?", s.PrerequisiteName).Row().Scan(&pid); err != nil {
				log.Fatalf("prerequisite %s not found for %s: %v", s.PrerequisiteName, s.Name, err)
			}
			prerequisiteID = &pid
		}

		err := db.Exec(`INSERT INTO leaves
			(name, description, pay_percentage, default_block_duration_in_days, calculation_period,
			 allowed_blocks_per_period, days_allowed_after, leave_allowed_after, dividable,
			 balance_is_accumulated, gender_strict, fallback_leave, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, true, now(), now())`,
			s.Name, s.Description, s.PayPercentage, s.BlockDays, s.Period,
			s.AllowedBlocks, s.DaysAllowedAfter, prerequisiteID, s.Dividable,
			s.Accumulated, s.GenderStrict, s.Fallback).Error
		if err != nil {
			log.Fatalf("failed to insert leave type %s: %v", s.Name, err)
		}
		fmt.Printf("Seeded leave type: %s\n", s.Name)
	}
}

func seedEmployees(db *gorm.DB, bcryptCost int) {
	var engineeringID int64
	if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Engineering").Row().Scan(&engineeringID); err != nil {
		log.Fatalf("engineering department not found: %v", err)
	}

	var managerID int64
	managerEmail := "manager@mail.com"
	if err := db.Raw("SELECT id FROM employees WHERE email = ?", managerEmail).Row().Scan(&managerID); err != nil {
		err := db.Raw(`INSERT INTO employees
			(name, email, job_title, gender, joining_date, department_id, salary, self_service, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, false, now(), now()) RETURNING id`,
			"Engineering Manager", managerEmail, "Engineering Manager", 1, "2020-01-15", engineeringID, 90000).Row().Scan(&managerID)
		if err != nil {
			log.Fatalf("failed to insert manager employee: %v", err)
		}
		fmt.Println("Seeded employee:", managerEmail)
	}

	staffEmail := "staff@mail.com"
	var staffID int64
	if err := db.Raw("SELECT id FROM employees WHERE email = ?", staffEmail).Row().Scan(&staffID); err != nil {
		err := db.Raw(`INSERT INTO employees
			(name, email, job_title, gender, joining_date, department_id, reporting_to, salary, self_service, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, true, now(), now()) RETURNING id`,
			"Staff Engineer", staffEmail, "Software Engineer", 0, "2024-06-01", engineeringID, managerID, 60000).Row().Scan(&staffID)
		if err != nil {
			log.Fatalf("failed to insert staff employee: %v", err)
		}
		fmt.Println("Seeded employee:", staffEmail)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", staffEmail).Row().Scan(&exists); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash staff password: %v", err)
	}
	if err := db.Exec("INSERT INTO users (email, name, password_hash, is_admin, employee_id, is_active, created_at, updated_at) VALUES (?, ?, ?, false, ?, true, now(), now())",
		staffEmail, "Staff Engineer", string(hash), staffID).Error; err != nil {
		log.Fatalf("failed to insert staff user: %v", err)
	}
	fmt.Println("Seeded self service user:", staffEmail)
}

func seedAdminUser(db *gorm.DB, bcryptCost int) {
	adminEmail := "admin@mail.com"

	var exists int
	row := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Println("admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	if err := db.Exec("INSERT INTO users (email, name, password_hash, is_admin, is_active, created_at, updated_at) VALUES (?, ?, ?, true, true, now(), now())", adminEmail, "Admin", string(hash)).Error; err != nil {
		log.Fatalf("failed to insert admin user: %v", err)
	}
	fmt.Println("Seeded admin user:", adminEmail)
}
