// Command doctor checks that every backing service in the environment is
// reachable with the current configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xyz-asif/tradehub/internal/config"
	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	"github.com/xyz-asif/tradehub/internal/pkg/cloudinary"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
)

type check struct {
	name     string
	required bool
	run      func(ctx context.Context, cfg *config.Config) (string, error)
}

var checks = []check{
	{"MongoDB", true, checkMongo},
	{"Redis", false, checkRedis},
	{"RabbitMQ", false, checkRabbit},
	{"Cloudinary", false, checkCloudinary},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failed := false
	for _, c := range checks {
		detail, err := c.run(ctx, cfg)
		switch {
		case err == nil:
			fmt.Printf("✅ %-10s %s\n", c.name, detail)
		case c.required:
			failed = true
			fmt.Printf("❌ %-10s %v\n", c.name, err)
		default:
			fmt.Printf("⚠️  %-10s %v\n", c.name, err)
		}
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("\n🎉 All required systems ready.")
}

func checkMongo(ctx context.Context, cfg *config.Config) (string, error) {
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB, database.Options{Timeout: 10 * time.Second})
	if err != nil {
		return "", err
	}
	defer db.Disconnect(ctx)

	if err := db.HealthCheck(ctx); err != nil {
		return "", err
	}
	return "database " + cfg.MongoDB, nil
}

func checkRedis(_ context.Context, cfg *config.Config) (string, error) {
	if cfg.RedisAddr == "" {
		return "", fmt.Errorf("REDIS_ADDR not set, in-process rate limiting will be used")
	}
	client := config.NewRedisClient(cfg)
	if client == nil {
		return "", fmt.Errorf("no answer from %s", cfg.RedisAddr)
	}
	defer client.Close()
	return cfg.RedisAddr, nil
}

func checkRabbit(_ context.Context, cfg *config.Config) (string, error) {
	if cfg.RabbitMQURL == "" {
		return "", fmt.Errorf("RABBITMQ_URL not set, lifecycle events are dropped")
	}
	pub, err := broker.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		return "", err
	}
	defer pub.Close()
	return "exchange " + cfg.EventsExchange, nil
}

func checkCloudinary(_ context.Context, cfg *config.Config) (string, error) {
	if _, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder); err != nil {
		return "", err
	}
	return "cloud " + cfg.CloudinaryCloudName + ", folder " + cfg.CloudinaryUploadFolder, nil
}
