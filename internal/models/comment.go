package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post.
//
// Threading is two tiers deep: ParentID nil means top-level, otherwise the
// parent must itself be top-level. The cap is enforced at creation.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	Content   string         `gorm:"not null" json:"content"`
	IsEdited  bool           `gorm:"not null;default:false" json:"is_edited"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Replies is populated by the list query; not a column.
	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}
