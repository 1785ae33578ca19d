package store

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;column:product_id;index" json:"-"`
	Name        string    `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Description string    `gorm:"type:text;not null;column:description" json:"description"`
	Date        time.Time `gorm:"autoCreateTime;column:date" json:"date"`
}

func (Review) TableName() string { return "review" }
