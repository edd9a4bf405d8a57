package specification

import "gorm.io/gorm"

// OwnedBy restricts any task query to one account. Every task read and write
// must carry this filter; cross-account access is impossible when it is
// applied.
type OwnedBy struct {
	UserID int64
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
