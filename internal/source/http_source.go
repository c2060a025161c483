package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultProductsURL = "https://fakestoreapi.com/products"

	defaultTimeout  = 10 * time.Second
	defaultMaxTries = 3
	maxBodyBytes    = 10 << 20
)

type HTTPOptions struct {
	URL             string
	Timeout         time.Duration
	MaxTries        uint
	InitialInterval time.Duration
	Client          *http.Client
	Logger          *zap.Logger
}

// HTTPSource reads a fakestore compatible JSON product list.
type HTTPSource struct {
	url             string
	client          *http.Client
	maxTries        uint
	initialInterval time.Duration
	logger          *zap.Logger
}

func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	if opts.URL == "" {
		opts.URL = DefaultProductsURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = defaultMaxTries
	}
	if opts.Client == nil {
		opts.Client = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &HTTPSource{
		url:             opts.URL,
		client:          opts.Client,
		maxTries:        opts.MaxTries,
		initialInterval: opts.InitialInterval,
		logger:          opts.Logger,
	}
}

func (s *HTTPSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	b := backoff.NewExponentialBackOff()
	if s.initialInterval > 0 {
		b.InitialInterval = s.initialInterval
	}

	products, err := backoff.Retry(ctx, func() ([]domain.Product, error) {
		return s.fetchOnce(ctx)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("product fetch failed, retrying",
				zap.String("url", s.url),
				zap.Duration("next", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		return nil, domain.NewFetchError(s.url, err)
	}

	return validProducts(products, s.logger), nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("http.NewRequestWithContext: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var products []domain.Product
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&products); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("json.Decode: %w", err))
	}

	return products, nil
}

// validProducts drops entries with a negative price or an out of range rating.
func validProducts(products []domain.Product, logger *zap.Logger) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price.IsNegative() || p.Rating.Rate < 0 || p.Rating.Rate > domain.MaxRating || p.Rating.Count < 0 {
			logger.Warn("skipping invalid product", zap.Int64("product_id", p.ID))
			continue
		}
		result = append(result, p)
	}
	return result
}
