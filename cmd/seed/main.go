// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()

	profile := flag.String("profile", "", "YAML profile with seeding options; flags override it")
	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	seedValue := flag.Int64("seed", 0, "Random seed; 0 picks one from the clock")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash passwords at minimum bcrypt cost")
	flag.Parse()

	opts := defaults
	if *profile != "" {
		loaded, err := seed.LoadProfile(*profile, defaults)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		opts = loaded
	}

	// Explicitly passed flags win over the profile.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "users":
			opts.NumUsers = *numUsers
		case "posts":
			opts.NumPosts = *numPosts
		case "seed":
			opts.Seed = *seedValue
		case "clean":
			opts.ShouldClean = *shouldClean
		case "fast":
			opts.SkipBcrypt = *fast
		}
	})
	if *profile == "" {
		opts.ShouldClean = *shouldClean
	}

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v", opts.NumUsers, opts.NumPosts, opts.ShouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	res, err := seed.Run(context.Background(), db, opts)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Created %d users, %d follows, %d posts, %d likes, %d comments, %d notifications, %d plans",
		res.Users, res.Follows, res.Posts, res.Likes, res.Comments, res.Notifications, res.Plans)
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}
