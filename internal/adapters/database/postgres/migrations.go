package postgres

import "github.com/Steelnight/dumpdate-bot/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Subscription{},
	&entity.PickupEvent{},
	&entity.Notification{},
}
