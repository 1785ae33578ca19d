package store

import "time"

const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

var Memberships = []string{MembershipBronze, MembershipSilver, MembershipGold}

func IsMembership(v string) bool {
	for _, m := range Memberships {
		if m == v {
			return true
		}
	}
	return false
}

type Customer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FirstName  string     `gorm:"type:varchar(255);not null;column:first_name;index" json:"first_name"`
	LastName   string     `gorm:"type:varchar(255);not null;column:last_name;index" json:"last_name"`
	Email      string     `gorm:"type:varchar(254);uniqueIndex;not null;column:email" json:"email"`
	Phone      string     `gorm:"type:varchar(255);not null;column:phone" json:"phone"`
	BirthDate  *time.Time `gorm:"type:date;column:birth_date" json:"birth_date"`
	Membership string     `gorm:"type:varchar(1);not null;default:B;column:membership" json:"membership"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Customer) TableName() string { return "customer" }

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
