package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/csu-scheduler/staffing-api-go/pkg/config"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	KeyID         uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date          string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount  int    `gorm:"default:0" json:"request_count"`
	TotalSessions int    `gorm:"default:0" json:"total_sessions"`
	TotalStaff    int    `gorm:"default:0" json:"total_staff"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// RosterSnapshot stores the most recent uploaded rosters as normalized JSON,
// so a schedule can be generated again without re-uploading the CSVs.
type RosterSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionsRaw string    `gorm:"type:text" json:"-"`
	StaffRaw    string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScheduleRun records one engine invocation and its shortfall summary.
type ScheduleRun struct {
	ID              string    `gorm:"primaryKey" json:"id"` // uuid
	SessionCount    int       `json:"session_count"`
	StaffCount      int       `json:"staff_count"`
	UnderStaffed    int       `json:"under_staffed"`
	UnbalancedCount int       `json:"unbalanced_count"`
	UnplacedCount   int       `json:"unplaced_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	if dsn := config.AppConfig.DatabaseURL; dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(config.AppConfig.DataPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &RosterSnapshot{}, &ScheduleRun{})

	return db
}
