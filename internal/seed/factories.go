// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillshare/internal/auth"
	"skillshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "password123"

var (
	exercises = []string{
		"Squats", "Deadlifts", "Bench Press", "Pull-ups", "Push-ups", "Lunges",
		"Plank", "Burpees", "Kettlebell Swings", "Rowing", "Overhead Press",
		"Box Jumps", "Jump Rope", "Hip Thrusts", "Mountain Climbers", "Cycling",
	}

	nutritionTopics = []string{
		"High protein breakfast", "Meal prep Sunday", "Hydration", "Low sugar snacks",
		"Post-workout recovery shake", "Intermittent fasting", "Plant-based dinner",
		"Healthy fats", "Portion control", "Fiber intake", "Pre-workout meal",
	}

	planTitles = []string{
		"Summer Shred", "Strength Base", "Marathon Prep", "Mobility Month",
		"Lean Bulk", "Core Blast", "Clean Eating Reset", "30 Day Challenge",
	}

	workoutStatuses = []string{
		models.WorkoutStatusPlanned, models.WorkoutStatusInProgress, models.WorkoutStatusCompleted,
	}
)

// Factory builds domain entities and persists them to the database.
// All randomness comes from its faker, so a fixed seed gives a repeatable
// data set.
type Factory struct {
	db     *gorm.DB
	faker  *gofakeit.Faker
	opts   Options
	digest string
	seq    int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{db: db, faker: gofakeit.New(opts.Seed), opts: opts}
}

// passwordDigest hashes DefaultPassword once per factory. SkipBcrypt drops
// to the minimum cost, which keeps logins working while seeding quickly.
func (f *Factory) passwordDigest() (string, error) {
	if f.digest != "" {
		return f.digest, nil
	}
	hasher := auth.NewBcryptHasher()
	if f.opts.SkipBcrypt {
		hasher.Cost = bcrypt.MinCost
	}
	digest, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return "", err
	}
	f.digest = digest
	return digest, nil
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	digest, err := f.passwordDigest()
	if err != nil {
		return nil, err
	}
	f.seq++
	first, last := f.faker.FirstName(), f.faker.LastName()
	user := &models.User{
		Email:      fmt.Sprintf("%s.%s%d@skillshare.dev", strings.ToLower(first), strings.ToLower(last), f.seq),
		Password:   digest,
		Firstname:  first,
		Lastname:   last,
		Bio:        f.faker.Sentence(10),
		ProfilePic: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateFollow stores the follower -> following edge. It reports false when
// the edge already existed.
func (f *Factory) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := f.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, fmt.Errorf("create follow: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// BuildPost constructs a post for user with a created_at spread over the
// last MaxDays days. It is not persisted.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute

	post := &models.Post{
		UserID:    user.ID,
		Content:   f.faker.Paragraph(1, f.faker.Number(1, 3), 8, "\n"),
		MediaURLs: []string{},
		CreatedAt: time.Now().Add(-back),
	}
	if f.faker.Float64Range(0, 1) < f.opts.MediaRatio {
		post.MediaURLs = []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID())}
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds and persists a post for user.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateLike records userID liking the post. It reports false when the like
// already existed.
func (f *Factory) CreateLike(ctx context.Context, postID, userID uint) (bool, error) {
	like := models.PostLike{PostID: postID, UserID: userID}
	res := f.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, fmt.Errorf("create like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CreateComment persists a comment by userID on the post.
func (f *Factory) CreateComment(ctx context.Context, post *models.Post, userID uint, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: userID,
		Text:   f.faker.Sentence(f.faker.Number(4, 14)),
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (f *Factory) pick(from []string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.faker.RandomString(from))
	}
	return out
}

func (f *Factory) deadline() string {
	days := f.faker.Number(7, 120)
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

// CreateWorkoutPlan persists a workout plan owned by user.
func (f *Factory) CreateWorkoutPlan(ctx context.Context, user *models.User, overrides ...func(*models.WorkoutPlan)) (*models.WorkoutPlan, error) {
	plan := &models.WorkoutPlan{
		UserID:      user.ID,
		Title:       f.faker.RandomString(planTitles),
		Description: f.faker.Sentence(12),
		Exercises:   f.pick(exercises, f.faker.Number(3, 6)),
		Deadline:    f.deadline(),
		Status:      f.faker.RandomString(workoutStatuses),
	}
	for _, override := range overrides {
		override(plan)
	}
	if err := f.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("create workout plan: %w", err)
	}
	return plan, nil
}

// CreateMealPlan persists a meal plan owned by user.
func (f *Factory) CreateMealPlan(ctx context.Context, user *models.User, overrides ...func(*models.MealPlan)) (*models.MealPlan, error) {
	plan := &models.MealPlan{
		UserID:      user.ID,
		Title:       f.faker.RandomString(planTitles),
		Description: f.faker.Sentence(12),
		Topics:      f.pick(nutritionTopics, f.faker.Number(2, 5)),
		Deadline:    f.deadline(),
	}
	for _, override := range overrides {
		override(plan)
	}
	if err := f.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	return plan, nil
}
