package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/config"
)

// Client Redis クライアントラッパー
// トークンブラックリストに使用。キャッシュ等への拡張も可能
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 接続を作成し Ping による疎通確認を行う
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 接続に失敗: %w", err)
	}

	logger.Info("Redis 接続成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── トークンブラックリスト ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID をブラックリストに登録する。TTL はトークンの残り有効期間
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 既に失効済み
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID がブラックリストに含まれるか確認する
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── レート制限 ──

// CheckRateLimit 固定ウィンドウ方式のレート制限。
// ウィンドウ内のリクエスト数が limit 以下なら true を返す
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close Redis 接続を閉じる
func (c *Client) Close() error {
	return c.rdb.Close()
}
