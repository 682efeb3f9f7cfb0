package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"wallet_card/internal/domain/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// LogoResolver fetches chain logo images and inlines them as data URIs so
// the rendered SVG has no external references.
type LogoResolver interface {
	// Resolve returns a mapping chain name -> inlined image data. A chain
	// whose logo could not be fetched is simply absent from the map.
	Resolve(ctx context.Context, chains []entity.ChainDescriptor) map[string]string
}

// logoResolverImpl is the fasthttp implementation of LogoResolver.
type logoResolverImpl struct {
	client        *fasthttp.Client
	timeout       time.Duration
	maxConcurrent int
	logger        *zap.Logger
}

// NewLogoResolver creates a new instance of logoResolverImpl.
func NewLogoResolver(timeout time.Duration, maxConcurrent int, logger *zap.Logger) LogoResolver {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &logoResolverImpl{
		client:        &fasthttp.Client{},
		timeout:       timeout,
		maxConcurrent: maxConcurrent,
		logger:        logger.Named("LogoResolver"),
	}
}

// Resolve implements LogoResolver. Logo fetches are independent, so they run
// concurrently; a single failure never aborts the request.
func (r *logoResolverImpl) Resolve(ctx context.Context, chains []entity.ChainDescriptor) map[string]string {
	logos := make(map[string]string, len(chains))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.maxConcurrent)

	for _, chain := range chains {
		if chain.LogoURL == "" {
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(ch entity.ChainDescriptor) {
			defer wg.Done()
			defer func() { <-sem }()

			dataURI, err := r.fetchInlined(ctx, ch.LogoURL)
			if err != nil {
				r.logger.Warn("Failed to fetch chain logo, rendering without it",
					zap.String("chain", ch.Name), zap.String("logoUrl", ch.LogoURL), zap.Error(err))
				return
			}
			mu.Lock()
			logos[ch.Name] = dataURI
			mu.Unlock()
		}(chain)
	}

	wg.Wait()
	return logos
}

func (r *logoResolverImpl) fetchInlined(ctx context.Context, logoURL string) (string, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(logoURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = r.client.DoDeadline(req, resp, deadline)
	} else {
		err = r.client.DoTimeout(req, resp, r.timeout)
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch logo from %s: %w", logoURL, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("logo fetch from %s returned status %d", logoURL, resp.StatusCode())
	}

	contentType := string(resp.Header.ContentType())
	if contentType == "" {
		contentType = "image/svg+xml"
	}
	encoded := base64.StdEncoding.EncodeToString(resp.Body())
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
