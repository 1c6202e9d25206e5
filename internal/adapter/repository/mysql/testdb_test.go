package mysql

import (
	"testing"

	appDomain "lamf-backend/internal/domain/application"
	collDomain "lamf-backend/internal/domain/collateral"
	loanDomain "lamf-backend/internal/domain/loan"
	productDomain "lamf-backend/internal/domain/product"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The domain
// models carry no MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&productDomain.Product{},
		&collDomain.Collateral{},
		&appDomain.Application{},
		&loanDomain.Loan{},
		&loanDomain.EMI{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
