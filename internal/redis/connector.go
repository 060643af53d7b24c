package redis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/avast/retry-go"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// ConnectOptions defines Redis connection retry behavior.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // Optional username
	Password       string        // Optional password
	RedisDB        int           // Redis DB number
	DialTimeout    time.Duration // Redis dial timeout
	ReadTimeout    time.Duration // Redis read timeout
	WriteTimeout   time.Duration // Redis write timeout
	PoolSize       int           // Redis connection pool size
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	MaxWait        time.Duration // max wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	WarnThreshold  int           // warn after this many attempts
}

// connectionLogger handles all Redis connection logging.
type connectionLogger struct {
	logger logger.Logger
	addr   string
}

func (cl *connectionLogger) logSuccess(attempts int, elapsed time.Duration) {
	if attempts > 1 {
		cl.logger.Warn("connected to redis after retry",
			logger.String("addr", cl.addr),
			logger.Int("attempts", attempts),
			logger.Duration("elapsed", elapsed))
		return
	}
	cl.logger.Info("connected to redis", logger.String("addr", cl.addr))
}

func (cl *connectionLogger) logRetry(attempt int, remaining time.Duration, warnThreshold int, err error) {
	switch {
	case remaining < 10*time.Second:
		cl.logger.Error("redis still down - retrying but timeout approaching",
			logger.String("addr", cl.addr),
			logger.Int("attempt", attempt),
			logger.Duration("remaining", remaining),
			logger.Error(err))
	case attempt <= warnThreshold:
		cl.logger.Warn("redis connection failed, retrying",
			logger.String("addr", cl.addr),
			logger.Int("attempt", attempt),
			logger.Error(err))
	default:
		cl.logger.Error("redis still unavailable - connection attempts failing",
			logger.String("addr", cl.addr),
			logger.Int("attempt", attempt),
			logger.Error(err))
	}
}

// validateOptions ensures all required configuration values are valid.
func validateOptions(opts ConnectOptions) error {
	switch {
	case opts.Addr == "":
		return fmt.Errorf("Addr must not be empty")
	case opts.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", opts.ConnectTimeout)
	case opts.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", opts.RetryInterval)
	case opts.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", opts.MaxWait)
	case opts.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", opts.PingTimeout)
	case opts.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", opts.WarnThreshold)
	}
	return nil
}

// New creates a Redis client and pings it with exponential backoff until
// ConnectTimeout is reached. Returns an error if no ping succeeds in time.
func New(opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := validateOptions(opts); err != nil {
		log.Error("invalid redis options", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := connectWithRetry(client, opts, &connectionLogger{logger: log, addr: opts.Addr}); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// connectWithRetry pings until success or until the total timeout expires.
func connectWithRetry(client *redis.Client, opts ConnectOptions, log *connectionLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	log.logger.Info("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	start := time.Now()
	attempts := 0

	err := retry.Do(
		func() error {
			attempts++
			pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
			defer pingCancel()
			return client.Ping(pingCtx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(math.MaxUint16),
		retry.Delay(opts.RetryInterval),
		retry.MaxDelay(opts.MaxWait),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.logRetry(int(n)+1, timeLeft(ctx), opts.WarnThreshold, err)
		}),
	)
	if err != nil {
		log.logger.Error("redis unavailable - failed to connect after timeout",
			logger.String("addr", opts.Addr),
			logger.Int("attempts", attempts),
			logger.Duration("timeout", opts.ConnectTimeout),
			logger.Error(err))
		return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
			opts.Addr, attempts, opts.ConnectTimeout, err)
	}

	log.logSuccess(attempts, time.Since(start))
	return nil
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
