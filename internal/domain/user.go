package domain

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"size:150;not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Subscription is a directed edge in the author-follow graph:
// subscriber follows owner. The pair is unique and owner != subscriber.
type Subscription struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	OwnerID      int64     `json:"owner_id" gorm:"not null;index;uniqueIndex:idx_owner_subscriber"`
	SubscriberID int64     `json:"subscriber_id" gorm:"not null;uniqueIndex:idx_owner_subscriber"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Subscription) TableName() string { return "subscriptions" }
