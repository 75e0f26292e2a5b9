package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
	redisstore "github.com/seekmark/seekmark/internal/store/redis"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time  // for testing, defaults to time.Now
	RedisClient       *redis.Client     // Redis client connection
	Store             *redisstore.Store // Persistence layer
	Hub               *notify.Hub       // Connected UI sessions
	WatchURLBase      string            // URL prefix for video links in export metadata
	AllowedOrigins    []string          // CORS origins for browser surfaces
	SeedReloadTrigger chan struct{}     // Channel to trigger manual seed import (nil if seeding disabled)
}
