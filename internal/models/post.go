package models

import (
	"time"

	"gorm.io/gorm"
)

// SnippetLanguages lists the languages accepted for an attached code snippet.
var SnippetLanguages = map[string]bool{
	"go":         true,
	"javascript": true,
	"typescript": true,
	"python":     true,
	"rust":       true,
	"java":       true,
	"c":          true,
	"cpp":        true,
	"csharp":     true,
	"ruby":       true,
	"php":        true,
	"swift":      true,
	"kotlin":     true,
	"sql":        true,
	"bash":       true,
	"html":       true,
	"css":        true,
	"other":      true,
}

// CodeSnippet is an optional code attachment on a post.
type CodeSnippet struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Post represents a feed post.
//
// LikeCount and CommentCount are persisted columns, recomputed from the
// likes/comments tables inside the same transaction as every relation
// mutation, so a committed post row never disagrees with its relations.
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	CodeSnippet  *CodeSnippet   `gorm:"serializer:json" json:"code_snippet,omitempty"`
	Tags         []string       `gorm:"serializer:json" json:"tags"`
	LikeCount    int            `gorm:"not null;default:0" json:"like_count"`
	CommentCount int            `gorm:"not null;default:0" json:"comment_count"`
	IsEdited     bool           `gorm:"not null;default:false" json:"is_edited"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Likes carries the liker user ids for like/unlike responses; not a column.
	Likes []uint `gorm:"-" json:"likes,omitempty"`
}
