package models

import "time"

// Category groups products. A nil UserID marks a global category shared by
// every user.
type Category struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`

	UserID *uint `gorm:"index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
