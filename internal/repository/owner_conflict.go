package repository

import "gorm.io/gorm/clause"

// ownerConflict is the upsert conflict target for user-scoped records. Every
// entity table is keyed by (user_id, id); conflicting on both columns means a
// write can only ever update rows the same user already owns.
func ownerConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		UpdateAll: true,
	}
}
