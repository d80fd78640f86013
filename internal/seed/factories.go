// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var skillPool = []string{
	"Go", "TypeScript", "Python", "Rust", "Kubernetes", "Docker", "PostgreSQL",
	"Redis", "GraphQL", "gRPC", "React", "Terraform", "AWS", "Kafka", "Linux",
}

var tagPool = []string{
	"go", "typescript", "python", "rust", "webdev", "devops", "databases",
	"distributed-systems", "testing", "performance", "opensource", "career",
	"tooling", "cloud", "security",
}

// snippetSamples maps a language to a few short, plausible code fragments.
var snippetSamples = map[string][]string{
	"go": {
		"func main() {\n\tfmt.Println(\"hello\")\n}",
		"for i := range items {\n\tprocess(items[i])\n}",
		"if err != nil {\n\treturn fmt.Errorf(\"load config: %w\", err)\n}",
	},
	"python": {
		"def fib(n):\n    return n if n < 2 else fib(n-1) + fib(n-2)",
		"with open(path) as f:\n    data = json.load(f)",
	},
	"typescript": {
		"const ids = posts.map((p) => p.id);",
		"export async function load(): Promise<Feed> {\n  return fetchFeed();\n}",
	},
	"sql": {
		"SELECT user_id, COUNT(*) FROM likes GROUP BY user_id;",
	},
	"bash": {
		"kubectl rollout restart deploy/api",
	},
}

var snippetLanguages = func() []string {
	langs := make([]string, 0, len(snippetSamples))
	for lang := range snippetSamples {
		langs = append(langs, lang)
	}
	return langs
}()

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Username: username,
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Skills:   f.pickSkills(),
	}

	if f.rng.Float32() < 0.6 {
		user.SocialLinks = &models.SocialLinks{
			GitHub:  fmt.Sprintf("https://github.com/%s", username),
			Website: gofakeit.URL(),
		}
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct for the given user without persisting
// it. Roughly a third of posts carry a code snippet. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:  user.ID,
		Tags:    f.pickTags(),
	}

	if f.rng.Float32() < 0.35 {
		lang := snippetLanguages[f.rng.Intn(len(snippetLanguages))]
		samples := snippetSamples[lang]
		post.CodeSnippet = &models.CodeSnippet{
			Code:     samples[f.rng.Intn(len(samples))],
			Language: lang,
		}
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a comment on the provided post.
// A non-nil parent makes it a reply.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollow persists a follow edge from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}

func (f *Factory) pickSkills() []string {
	n := f.rng.Intn(5) + 1
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		s := skillPool[f.rng.Intn(len(skillPool))]
		if seen[s] {
			continue
		}
		seen[s] = true
		picked = append(picked, s)
	}
	return picked
}

func (f *Factory) pickTags() []string {
	n := f.rng.Intn(4) // 0 to 3 tags
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		tag := tagPool[f.rng.Intn(len(tagPool))]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		picked = append(picked, tag)
	}
	return picked
}
