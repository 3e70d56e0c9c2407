package domain

import "regexp"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;not null"`
	Color string `json:"color" gorm:"size:7;default:#FF0000"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }

// ValidSlug reports whether s is a well-formed tag slug.
func ValidSlug(s string) bool {
	return s != "" && slugPattern.MatchString(s)
}
