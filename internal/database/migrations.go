package database

import (
	"parking-lot-api/internal/models"
)

func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.VehicleType{},
		&models.Vehicle{},
		&models.Slot{},
		&models.Ticket{},
	); err != nil {
		return err
	}

	// At most one open ticket per vehicle, enforced by the store. AutoMigrate
	// has no syntax for partial indexes, so this one is raw SQL.
	return DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_one_open_per_vehicle " +
			"ON tickets (vehicle_id) WHERE exit_time IS NULL",
	).Error
}
