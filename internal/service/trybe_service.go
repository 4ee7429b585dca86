package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/infra"
)

// TrybeService proxies the external Trybe inventory API. Responses are cached
// in Redis for a short window and all upstream calls run behind a circuit
// breaker, so a flapping upstream degrades to cached (or empty) data instead
// of tying up request handlers.
type TrybeService interface {
	ListProducts(ctx context.Context, page int, query string) (*dto.TrybeListResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.TrybeProduct, error)
}

type trybeService struct {
	client   *infra.TrybeClient
	rdb      *redis.Client
	breaker  *infra.CircuitBreaker
	cacheTTL time.Duration
}

func NewTrybeService(client *infra.TrybeClient, rdb *redis.Client) TrybeService {
	return &trybeService{
		client:   client,
		rdb:      rdb,
		breaker:  infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		cacheTTL: 60 * time.Second,
	}
}

func (s *trybeService) ListProducts(ctx context.Context, page int, query string) (*dto.TrybeListResponse, error) {
	if page < 1 {
		page = 1
	}
	cacheKey := fmt.Sprintf("trybe:products:%d:%s", page, query)

	var cached dto.TrybeListResponse
	if s.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var resp *dto.TrybeListResponse
	err := s.breaker.Execute(func() error {
		var err error
		resp, err = s.client.ListProducts(ctx, page, query)
		return err
	})
	if err != nil {
		return nil, s.upstreamError(err)
	}

	s.toCache(ctx, cacheKey, resp)
	return resp, nil
}

func (s *trybeService) GetProduct(ctx context.Context, id string) (*dto.TrybeProduct, error) {
	cacheKey := "trybe:product:" + id

	var cached dto.TrybeProduct
	if s.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var product *dto.TrybeProduct
	err := s.breaker.Execute(func() error {
		var err error
		product, err = s.client.GetProduct(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, infra.ErrTrybeNotFound) {
			return nil, &NotFoundError{Entity: "trybe product"}
		}
		return nil, s.upstreamError(err)
	}

	s.toCache(ctx, cacheKey, product)
	return product, nil
}

func (s *trybeService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *trybeService) toCache(ctx context.Context, key string, value any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("trybe cache write failed")
	}
}

func (s *trybeService) upstreamError(err error) error {
	if errors.Is(err, infra.ErrCircuitOpen) {
		return errBusinessRule("inventory service temporarily unavailable")
	}
	return fmt.Errorf("trybe upstream: %w", err)
}
