package postgres

import (
	"commissions/internal/adapters/out/postgres/certificaterepo"
	"commissions/internal/adapters/out/postgres/messagerepo"
	"commissions/internal/adapters/out/postgres/orderrepo"
	"commissions/internal/adapters/out/postgres/talentrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the DTOs. Postgres deployments use
// the goose migrations instead; this serves the sqlite driver and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&talentrepo.TalentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.VersionDTO{},
		&orderrepo.FileDTO{},
		&messagerepo.MessageDTO{},
		&certificaterepo.CertificateDTO{},
	)
}
