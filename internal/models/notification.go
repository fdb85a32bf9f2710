package models

import "time"

type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RecipientID uint       `gorm:"not null;index" json:"recipientId"`
	Type        string     `gorm:"size:30;not null;index" json:"type"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Link        string     `gorm:"size:512" json:"link"`
	IsRead      bool       `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt      *time.Time `json:"readAt"`
	Priority    string     `gorm:"size:10;not null;default:'normal'" json:"priority"` // low | normal | high
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
