package seed

import (
	"fmt"
	"log"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	// MaxDays bounds how far in the past generated posts are dated.
	MaxDays int
}

// Seed populates the database with a connected social graph: users with
// profiles, a follow mesh, posts, likes, and threaded comments. The
// denormalized like_count and comment_count columns are recomputed from the
// relation tables at the end so seeded rows obey the same consistency rule
// as live writes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if opts.DryRun {
		log.Println("[dry-run] skipping follows, likes, and comments")
		return nil
	}

	if err := createFollowMesh(factory, users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	if err := createLikes(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	if err := createComments(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	if err := recountEngagement(db); err != nil {
		return fmt.Errorf("failed to recount engagement columns: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a known login for manual testing.
	if count >= 1 {
		user, err := factory.CreateUser(func(u *models.User) {
			u.Username = "demo"
			u.Email = "demo@example.com"
			u.Bio = "Demo account. The password is password123."
		})
		if err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rng.Intn(len(users))]
		posts = append(posts, factory.BuildPost(user))
	}

	// Chunked batch insert keeps memory flat for large seeds.
	const chunk = 200
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := factory.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// createFollowMesh gives every user a handful of random follows so each
// seeded account has a non-empty feed.
func createFollowMesh(factory *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		n := factory.rng.Intn(6) + 2
		if n > len(users)-1 {
			n = len(users) - 1
		}
		seen := map[uint]bool{}
		for len(seen) < n {
			followee := users[factory.rng.Intn(len(users))]
			if followee.ID == follower.ID || seen[followee.ID] {
				continue
			}
			seen[followee.ID] = true
			if err := factory.CreateFollow(follower, followee); err != nil {
				return err
			}
		}
	}
	return nil
}

func createLikes(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		n := factory.rng.Intn(len(users)/2 + 1)
		seen := map[uint]bool{}
		for len(seen) < n {
			user := users[factory.rng.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			if err := factory.CreateLike(user, post); err != nil {
				return err
			}
		}
	}
	return nil
}

// createComments seeds top-level comments and, for some of them, one tier
// of replies. Replies never nest further, matching the API's threading cap.
func createComments(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		n := factory.rng.Intn(4)
		for i := 0; i < n; i++ {
			author := users[factory.rng.Intn(len(users))]
			parent, err := factory.CreateComment(author, post, nil)
			if err != nil {
				return err
			}

			replies := factory.rng.Intn(3)
			for j := 0; j < replies; j++ {
				replier := users[factory.rng.Intn(len(users))]
				if _, err := factory.CreateComment(replier, post, parent); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func recountEngagement(db *gorm.DB) error {
	if err := db.Exec(`UPDATE posts SET like_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)`).Error; err != nil {
		return err
	}
	return db.Exec(`UPDATE posts SET comment_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL)`).Error
}
