package seed

import (
	"testing"
	"time"

	"devconnect/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeed_PopulatesSocialGraph(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)

	if err := Seed(db, Options{NumUsers: 6, NumPosts: 12, SkipBcrypt: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var userCount, postCount, followCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if err := db.Model(&models.Follow{}).Count(&followCount).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}

	if userCount != 6 {
		t.Fatalf("expected 6 users, got %d", userCount)
	}
	if postCount != 12 {
		t.Fatalf("expected 12 posts, got %d", postCount)
	}
	// every user follows at least two others
	if followCount < 12 {
		t.Fatalf("expected at least 12 follow edges, got %d", followCount)
	}
}

func TestSeed_EngagementCountsMatchRelations(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)

	if err := Seed(db, Options{NumUsers: 5, NumPosts: 10, SkipBcrypt: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var posts []models.Post
	if err := db.Find(&posts).Error; err != nil {
		t.Fatalf("load posts: %v", err)
	}

	for _, post := range posts {
		var likes, comments int64
		if err := db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
			t.Fatalf("count likes: %v", err)
		}
		if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error; err != nil {
			t.Fatalf("count comments: %v", err)
		}
		if post.LikeCount != int(likes) {
			t.Fatalf("post %d: like_count=%d but %d like rows", post.ID, post.LikeCount, likes)
		}
		if post.CommentCount != int(comments) {
			t.Fatalf("post %d: comment_count=%d but %d comment rows", post.ID, post.CommentCount, comments)
		}
	}
}

func TestSeed_RepliesStayOneTierDeep(t *testing.T) {
	t.Parallel()

	db := openSeedDB(t)

	if err := Seed(db, Options{NumUsers: 5, NumPosts: 20, SkipBcrypt: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var replies []models.Comment
	if err := db.Where("parent_id IS NOT NULL").Find(&replies).Error; err != nil {
		t.Fatalf("load replies: %v", err)
	}

	for _, reply := range replies {
		var parent models.Comment
		if err := db.First(&parent, *reply.ParentID).Error; err != nil {
			t.Fatalf("load parent of reply %d: %v", reply.ID, err)
		}
		if parent.ParentID != nil {
			t.Fatalf("reply %d nests under another reply %d", reply.ID, parent.ID)
		}
	}
}

func TestBuildPost_SnippetsAndTimestamps(t *testing.T) {
	t.Parallel()

	opts := Options{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	user := &models.User{ID: 1}

	sawSnippet := false
	for i := 0; i < 50; i++ {
		p := f.BuildPost(user)
		if p.Content == "" {
			t.Fatal("expected non-empty content")
		}
		if len(p.Tags) > 3 {
			t.Fatalf("too many tags: %d", len(p.Tags))
		}
		if time.Since(p.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
			t.Fatalf("created_at too old: %v", p.CreatedAt)
		}
		if p.CodeSnippet != nil {
			sawSnippet = true
			if !models.SnippetLanguages[p.CodeSnippet.Language] {
				t.Fatalf("generated snippet with unsupported language %q", p.CodeSnippet.Language)
			}
			if p.CodeSnippet.Code == "" {
				t.Fatal("snippet without code")
			}
		}
	}
	if !sawSnippet {
		t.Fatal("expected at least one generated post to carry a snippet")
	}
}

func TestCreateUser_DryRunAssignsSyntheticIDs(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	first, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("dry-run users should get synthetic ids")
	}
	if first.ID == second.ID {
		t.Fatalf("synthetic ids must be distinct, both %d", first.ID)
	}
	if len(first.Skills) == 0 {
		t.Fatal("expected generated skills")
	}
}
