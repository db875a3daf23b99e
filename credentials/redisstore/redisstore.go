package redisstore

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/tenants"
)

// Store keeps credentials in Redis, for headless agents that share a session
// across hosts. Keys are namespaced by profile so several accounts can
// coexist on one Redis instance.
type Store struct {
	client  *redis.Client
	profile string
}

var _ credentials.Store = (*Store)(nil)

// New creates a Redis-backed credential store for the given profile name.
func New(client *redis.Client, profile string) (*Store, error) {
	if client == nil {
		return nil, errors.New("[redisstore.New] redis client is required")
	}
	if profile == "" {
		profile = "default"
	}
	return &Store{client: client, profile: profile}, nil
}

func (s *Store) tokenKey() string  { return "storepulse:" + s.profile + ":authToken" }
func (s *Store) tenantKey() string { return "storepulse:" + s.profile + ":currentTenant" }

func (s *Store) Save(creds *credentials.Credentials) error {
	ctx := context.Background()
	if err := s.client.Set(ctx, s.tokenKey(), creds.Token, 0).Err(); err != nil {
		return errors.Wrap(err, "[Store.Save] set token")
	}
	return s.SaveTenant(creds.Tenant)
}

func (s *Store) SaveTenant(tenant *tenants.Tenant) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return errors.Wrap(err, "[Store.SaveTenant] marshal tenant")
	}
	err = s.client.Set(context.Background(), s.tenantKey(), data, 0).Err()
	return errors.Wrap(err, "[Store.SaveTenant] set tenant")
}

func (s *Store) Load() (*credentials.Credentials, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(context.Background(), s.tenantKey()).Bytes()
	if err == redis.Nil {
		return nil, credentials.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Store.Load] get tenant")
	}
	var tenant tenants.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		return nil, errors.Wrap(err, "[Store.Load] unmarshal tenant")
	}
	return &credentials.Credentials{Token: token, Tenant: &tenant}, nil
}

func (s *Store) Token() (string, error) {
	token, err := s.client.Get(context.Background(), s.tokenKey()).Result()
	if err == redis.Nil {
		return "", credentials.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[Store.Token] get token")
	}
	return token, nil
}

func (s *Store) Clear() error {
	err := s.client.Del(context.Background(), s.tokenKey(), s.tenantKey()).Err()
	return errors.Wrap(err, "[Store.Clear] del keys")
}
