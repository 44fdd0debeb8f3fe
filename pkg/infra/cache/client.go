package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
)

const (
	VerdictKeyPattern = "verdict:%s"

	VerdictTTLName = "verdict"

	DefaultVerdictTTL = 15 * time.Minute
)

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error

	GetVerdict(ctx context.Context, promptDigest string) (*assessment.TextModerationResult, error)
	SaveVerdict(ctx context.Context, promptDigest string, verdict *assessment.TextModerationResult, ttl time.Duration) error

	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host": config.Host,
			"port": config.Port,
		}).WithError(err).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &client{redisClient: redisClient}, nil
}

// NewClientWithRedis wraps an existing redis client; used by tests.
func NewClientWithRedis(redisClient *redis.Client) Client {
	return &client{redisClient: redisClient}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) GetVerdict(ctx context.Context, promptDigest string) (*assessment.TextModerationResult, error) {
	data, err := c.Get(ctx, fmt.Sprintf(VerdictKeyPattern, promptDigest))
	if err != nil {
		return nil, err
	}
	var verdict assessment.TextModerationResult
	if err := json.Unmarshal([]byte(data), &verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached verdict: %w", err)
	}
	return &verdict, nil
}

func (c *client) SaveVerdict(ctx context.Context, promptDigest string, verdict *assessment.TextModerationResult, ttl time.Duration) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultVerdictTTL
	}
	return c.Set(ctx, fmt.Sprintf(VerdictKeyPattern, promptDigest), string(data), ttl)
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		if ttlMap, ok := value.(*TTLMap); ok {
			return ttlMap
		}
	}
	return c.CreateTTLMap(name, DefaultVerdictTTL)
}
