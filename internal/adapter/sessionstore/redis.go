package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"loanledger-backend/internal/usecase/auth"
)

const keyPrefix = "sess:"

// RedisStore keeps sessions as JSON values with a TTL, so expiry needs no
// sweeper: Redis drops the key and the cookie stops resolving.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

var _ auth.SessionStore = (*RedisStore)(nil)

func (s *RedisStore) Create(ctx context.Context, sess auth.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sess.Token, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*auth.Session, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrUnauthorized
		}
		return nil, err
	}
	var sess auth.Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
