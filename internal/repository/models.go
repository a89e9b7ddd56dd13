package repository

import "gorm.io/gorm"

// Models lists every GORM model owned by this service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&LodgeModel{},
		&BookingModel{},
		&ReviewModel{},
	}
}

// AutoMigrate creates or updates tables for all models. It is used in
// development and tests; other environments apply the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
