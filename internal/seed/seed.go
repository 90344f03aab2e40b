package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"skillshare/internal/database"
	"skillshare/internal/models"
	"skillshare/internal/repository"
	"skillshare/internal/service"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options controls the size and shape of a seeded data set. A profile file
// uses the yaml keys below.
type Options struct {
	NumUsers        int     `yaml:"users"`
	NumPosts        int     `yaml:"posts"`
	PlansPerUser    int     `yaml:"plans_per_user"`
	FollowRatio     float64 `yaml:"follow_ratio"`
	MaxLikesPerPost int     `yaml:"max_likes_per_post"`
	MaxComments     int     `yaml:"max_comments_per_post"`
	MediaRatio      float64 `yaml:"media_ratio"`
	MaxDays         int     `yaml:"max_days"`
	Seed            int64   `yaml:"seed"`
	SkipBcrypt      bool    `yaml:"skip_bcrypt"`
	ShouldClean     bool    `yaml:"clean"`
}

// DefaultOptions is a small data set suitable for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:        10,
		NumPosts:        30,
		PlansPerUser:    1,
		FollowRatio:     0.3,
		MaxLikesPerPost: 5,
		MaxComments:     3,
		MediaRatio:      0.6,
		MaxDays:         90,
	}
}

// LoadProfile reads a yaml profile and overlays it onto base. Keys missing
// from the file keep their base value.
func LoadProfile(path string, base Options) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read seed profile: %w", err)
	}
	opts := base
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return base, fmt.Errorf("parse seed profile %s: %w", path, err)
	}
	return opts, nil
}

// Result counts what a run created.
type Result struct {
	Users         int
	Follows       int
	Posts         int
	Likes         int
	Comments      int
	Notifications int
	Plans         int
}

// Run populates the database. Follows, likes and comments between distinct
// users produce the same notifications the API would.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	slog.InfoContext(ctx, "starting database seeding",
		slog.Int("users", opts.NumUsers),
		slog.Int("posts", opts.NumPosts),
		slog.Int64("seed", opts.Seed),
	)

	if opts.ShouldClean {
		if err := clearData(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db, opts)
	notifier := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	res := &Result{}

	notify := func(recipientID, senderID uint, kind models.NotificationKind, subjectID *uint) error {
		if recipientID == senderID {
			return nil
		}
		if _, err := notifier.Send(ctx, recipientID, senderID, kind, subjectID); err != nil {
			return err
		}
		res.Notifications++
		return nil
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, u)
	}
	res.Users = len(users)
	if len(users) == 0 {
		return res, nil
	}

	for _, follower := range users {
		for _, target := range users {
			if follower.ID == target.ID || f.faker.Float64Range(0, 1) >= opts.FollowRatio {
				continue
			}
			added, err := f.CreateFollow(ctx, follower.ID, target.ID)
			if err != nil {
				return nil, err
			}
			if !added {
				continue
			}
			res.Follows++
			if err := notify(target.ID, follower.ID, models.NotificationFollow, nil); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.faker.Number(0, len(users)-1)]
		post, err := f.CreatePost(ctx, author)
		if err != nil {
			return nil, fmt.Errorf("failed to create posts: %w", err)
		}
		res.Posts++
		postID := post.ID

		for n := f.faker.Number(0, opts.MaxLikesPerPost); n > 0; n-- {
			liker := users[f.faker.Number(0, len(users)-1)]
			added, err := f.CreateLike(ctx, postID, liker.ID)
			if err != nil {
				return nil, err
			}
			if !added {
				continue
			}
			res.Likes++
			if err := notify(author.ID, liker.ID, models.NotificationLike, &postID); err != nil {
				return nil, err
			}
		}

		for n := f.faker.Number(0, opts.MaxComments); n > 0; n-- {
			commenter := users[f.faker.Number(0, len(users)-1)]
			if _, err := f.CreateComment(ctx, post, commenter.ID); err != nil {
				return nil, err
			}
			res.Comments++
			if err := notify(author.ID, commenter.ID, models.NotificationComment, &postID); err != nil {
				return nil, err
			}
		}
	}

	for _, u := range users {
		for i := 0; i < opts.PlansPerUser; i++ {
			if _, err := f.CreateWorkoutPlan(ctx, u); err != nil {
				return nil, err
			}
			if _, err := f.CreateMealPlan(ctx, u); err != nil {
				return nil, err
			}
			res.Plans += 2
		}
	}

	slog.InfoContext(ctx, "database seeding completed",
		slog.Int("users", res.Users),
		slog.Int("follows", res.Follows),
		slog.Int("posts", res.Posts),
		slog.Int("likes", res.Likes),
		slog.Int("comments", res.Comments),
		slog.Int("notifications", res.Notifications),
		slog.Int("plans", res.Plans),
	)
	return res, nil
}

func clearData(ctx context.Context, db *gorm.DB) error {
	all := database.PersistentModels()
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for i := len(all) - 1; i >= 0; i-- {
		if err := tx.Delete(all[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
