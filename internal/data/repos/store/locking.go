package store

import (
	"fmt"

	"gorm.io/gorm/clause"
)

// Row lock strengths accepted by the LockByID methods.
const (
	LockForUpdate = "UPDATE"
	LockForShare  = "SHARE"
)

func lockingClause(strength string) (clause.Locking, error) {
	switch strength {
	case LockForUpdate, LockForShare:
		return clause.Locking{Strength: strength}, nil
	default:
		return clause.Locking{}, fmt.Errorf("unsupported lock strength %q", strength)
	}
}
