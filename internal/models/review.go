package models

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index:idx_review_company_user,unique" json:"companyId"`
	UserID      uint      `gorm:"not null;index:idx_review_company_user,unique" json:"userId,omitempty"`
	Rating      int       `gorm:"not null" json:"rating"`
	Title       string    `gorm:"size:255" json:"title"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Pros        string    `gorm:"type:text" json:"pros"`
	Cons        string    `gorm:"type:text" json:"cons"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"isAnonymous"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
