// Package redis stores each slot under one key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
)

// Config holds the connection parameters.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// SlotStore keeps slots as plain string values without expiry.
type SlotStore struct {
	rdb    *goredis.Client
	prefix string
}

var _ portsrepo.SlotStore = (*SlotStore)(nil)

// NewSlotStore connects and pings the server.
func NewSlotStore(ctx context.Context, cfg Config) (*SlotStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &SlotStore{rdb: rdb, prefix: cfg.Prefix}, nil
}

// NewSlotStoreFromClient wraps an existing client.
func NewSlotStoreFromClient(rdb *goredis.Client, prefix string) *SlotStore {
	return &SlotStore{rdb: rdb, prefix: prefix}
}

func (s *SlotStore) key(slot string) string { return s.prefix + slot }

func (s *SlotStore) Load(ctx context.Context, slot string) ([]byte, error) {
	payload, err := s.rdb.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, apperrors.ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key(slot), err)
	}
	return payload, nil
}

func (s *SlotStore) Save(ctx context.Context, slot string, payload []byte) error {
	if err := s.rdb.Set(ctx, s.key(slot), payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key(slot), err)
	}
	return nil
}

func (s *SlotStore) Delete(ctx context.Context, slot string) error {
	if err := s.rdb.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", s.key(slot), err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SlotStore) Close() error {
	return s.rdb.Close()
}
