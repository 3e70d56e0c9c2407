package domain

import "time"

// AuthToken backs an issued access token. The token itself is a signed JWT
// carrying this row's ID as its jti claim; deleting the row invalidates the
// token on logout.
type AuthToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuthToken) TableName() string { return "auth_tokens" }
