package models

import "time"

type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;uniqueIndex" json:"ownerId"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Website     string    `gorm:"size:255" json:"website"`
	Industry    string    `gorm:"size:100;index" json:"industry"`
	Size        string    `gorm:"size:50" json:"size"`
	Location    string    `gorm:"size:255" json:"location"`
	LogoURL     string    `gorm:"size:512" json:"logoUrl"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}
