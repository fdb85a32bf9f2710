package models

import "time"

type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID string     `gorm:"size:64;not null;index" json:"conversationId"`
	SenderID       uint       `gorm:"not null;index" json:"senderId"`
	ReceiverID     uint       `gorm:"not null;index" json:"receiverId"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	IsRead         bool       `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt         *time.Time `json:"readAt"`
	ApplicationID  *uint      `json:"applicationId,omitempty"`
	JobID          *uint      `json:"jobId,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
