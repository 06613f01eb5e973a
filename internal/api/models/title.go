package models

import "time"

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty" gorm:"size:200"`
	CategoryID  *int64    `json:"-" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	// Rating is the live AVG over review scores, filled by the
	// repository on reads. Nil when the title has no reviews.
	Rating *float64 `json:"rating" gorm:"-"`
}

func (Title) TableName() string {
	return "titles"
}
