// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds a user's external profile URLs.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// User represents a registered developer account.
//
// Followers and Following are not stored on the user row. The follows table
// is the single source of truth for the social graph; both lists are derived
// queries and populated here only for API responses.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Bio         string         `json:"bio"`
	Avatar      string         `json:"avatar"`
	Skills      []string       `gorm:"serializer:json" json:"skills"`
	SocialLinks *SocialLinks   `gorm:"serializer:json" json:"social_links,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// Derived from the follows table; not columns.
	Followers []uint `gorm:"-" json:"followers,omitempty"`
	Following []uint `gorm:"-" json:"following,omitempty"`
	// FollowerCount is computed at query time for search ordering.
	FollowerCount int `gorm:"->" json:"follower_count,omitempty"`
}
