package client

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wallet_card/internal/domain/entity"
	"wallet_card/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChainProviderClient defines the interface for interacting with the
// blockchain data provider API.
type ChainProviderClient interface {
	// GetAllChains returns the full catalog of chains the provider supports.
	GetAllChains(ctx context.Context) ([]entity.ChainDescriptor, error)

	// GetAddressActivity returns the provider-normalized address and the
	// chains the address has ever transacted on.
	GetAddressActivity(ctx context.Context, address string) (string, []entity.ChainDescriptor, error)

	// GetTokenBalances returns the provider-normalized address and all token
	// balances for the address on one chain, priced in the quote currency.
	GetTokenBalances(ctx context.Context, chainName, address, currency string) (string, []entity.BalanceRecord, error)

	// GetTransactionSummary returns the per-chain transaction roll-up, or
	// nil when the provider has no data for the address on that chain.
	GetTransactionSummary(ctx context.Context, chainName, address string) (*entity.TransactionSummary, error)

	// GetTransactions drains the full paginated transaction history for the
	// address on one chain.
	GetTransactions(ctx context.Context, chainName, address string) ([]entity.TransactionItem, error)
}

// covalentClientImpl is the fasthttp implementation of ChainProviderClient.
type covalentClientImpl struct {
	client   *fasthttp.Client
	baseURL  string
	apiKey   string
	timeout  time.Duration
	limiter  *rate.Limiter
	pageSize int
	logger   *zap.Logger
}

// NewCovalentClient creates a new instance of covalentClientImpl. The
// limiter throttles all outbound calls; the per-call timeout applies when
// the context carries no deadline of its own.
func NewCovalentClient(baseURL, apiKey string, timeout time.Duration, ratePerSecond float64, pageSize int, logger *zap.Logger) ChainProviderClient {
	return &covalentClientImpl{
		client:   &fasthttp.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), int(ratePerSecond)+1),
		pageSize: pageSize,
		logger:   logger.Named("CovalentClient"),
	}
}

// providerEnvelope mirrors the provider's {data, error, error_message}
// response wrapper. Items stays raw so each endpoint can decode its own
// item type.
type providerEnvelope struct {
	Data struct {
		UpdatedAt  string             `json:"updated_at"`
		Address    string             `json:"address"`
		Items      stdjson.RawMessage `json:"items"`
		Pagination *struct {
			HasMore bool `json:"has_more"`
		} `json:"pagination"`
	} `json:"data"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

func (c *covalentClientImpl) doGet(ctx context.Context, endpoint, path string) (*providerEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", endpoint, err)
	}

	requestURL := c.baseURL + path
	c.logger.Debug("Requesting data from provider", zap.String("endpoint", endpoint), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.apiKey)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(endpoint).Inc()
		c.logger.Error("Failed to execute provider request", zap.String("url", requestURL), zap.Error(err))
		return nil, &entity.UpstreamError{Endpoint: endpoint, Message: err.Error()}
	}

	statusCode := resp.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		metrics.UpstreamErrors.WithLabelValues(endpoint).Inc()
		c.logger.Error("Provider request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", statusCode),
			zap.ByteString("responseBody", resp.Body()))
		return nil, &entity.UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Status: http.StatusText(statusCode)}
	}

	var env providerEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		metrics.UpstreamErrors.WithLabelValues(endpoint).Inc()
		c.logger.Error("Failed to unmarshal provider response", zap.String("url", requestURL), zap.Error(err))
		return nil, &entity.UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Message: err.Error()}
	}
	if env.Error {
		metrics.UpstreamErrors.WithLabelValues(endpoint).Inc()
		c.logger.Error("Provider returned an error envelope",
			zap.String("url", requestURL), zap.String("errorMessage", env.ErrorMessage))
		return nil, &entity.UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Message: env.ErrorMessage}
	}

	return &env, nil
}

// GetAllChains implements ChainProviderClient.
func (c *covalentClientImpl) GetAllChains(ctx context.Context) ([]entity.ChainDescriptor, error) {
	env, err := c.doGet(ctx, "chains", "/v1/chains/")
	if err != nil {
		return nil, err
	}

	var chains []entity.ChainDescriptor
	if len(env.Data.Items) > 0 {
		if err := json.Unmarshal(env.Data.Items, &chains); err != nil {
			return nil, &entity.UpstreamError{Endpoint: "chains", Message: err.Error()}
		}
	}
	c.logger.Debug("Fetched chain catalog", zap.Int("chainCount", len(chains)))
	return chains, nil
}

// GetAddressActivity implements ChainProviderClient.
func (c *covalentClientImpl) GetAddressActivity(ctx context.Context, address string) (string, []entity.ChainDescriptor, error) {
	path := fmt.Sprintf("/v1/labs/activity/%s/", url.PathEscape(address))
	env, err := c.doGet(ctx, "activity", path)
	if err != nil {
		return "", nil, err
	}

	var events []entity.ChainActivityEvent
	if len(env.Data.Items) > 0 {
		if err := json.Unmarshal(env.Data.Items, &events); err != nil {
			return "", nil, &entity.UpstreamError{Endpoint: "activity", Message: err.Error()}
		}
	}
	chains := make([]entity.ChainDescriptor, 0, len(events))
	for _, ev := range events {
		chains = append(chains, ev.ChainDescriptor)
	}
	c.logger.Debug("Fetched address activity",
		zap.String("resolvedAddress", env.Data.Address), zap.Int("chainCount", len(chains)))
	return env.Data.Address, chains, nil
}

// GetTokenBalances implements ChainProviderClient.
func (c *covalentClientImpl) GetTokenBalances(ctx context.Context, chainName, address, currency string) (string, []entity.BalanceRecord, error) {
	path := fmt.Sprintf("/v1/%s/address/%s/balances_v2/?quote-currency=%s",
		url.PathEscape(chainName), url.PathEscape(address), url.QueryEscape(currency))
	env, err := c.doGet(ctx, "balances", path)
	if err != nil {
		return "", nil, err
	}

	// A null or missing items payload is a provider-side "no data" response,
	// not an error.
	var balances []entity.BalanceRecord
	if len(env.Data.Items) > 0 {
		if err := json.Unmarshal(env.Data.Items, &balances); err != nil {
			return "", nil, &entity.UpstreamError{Endpoint: "balances", Message: err.Error()}
		}
	}
	for i := range balances {
		balances[i].ChainName = chainName
	}
	return env.Data.Address, balances, nil
}

// GetTransactionSummary implements ChainProviderClient.
func (c *covalentClientImpl) GetTransactionSummary(ctx context.Context, chainName, address string) (*entity.TransactionSummary, error) {
	path := fmt.Sprintf("/v1/%s/address/%s/transactions_summary/",
		url.PathEscape(chainName), url.PathEscape(address))
	env, err := c.doGet(ctx, "summary", path)
	if err != nil {
		return nil, err
	}

	var summaries []entity.TransactionSummary
	if len(env.Data.Items) > 0 {
		if err := json.Unmarshal(env.Data.Items, &summaries); err != nil {
			return nil, &entity.UpstreamError{Endpoint: "summary", Message: err.Error()}
		}
	}
	if len(summaries) == 0 {
		c.logger.Debug("No transaction summary for address on chain",
			zap.String("chain", chainName), zap.String("address", address))
		return nil, nil
	}
	summary := summaries[0]
	summary.ChainName = chainName
	return &summary, nil
}

// GetTransactions implements ChainProviderClient. The history is paginated;
// every page is drained before returning so day bucketing sees the full
// stream.
func (c *covalentClientImpl) GetTransactions(ctx context.Context, chainName, address string) ([]entity.TransactionItem, error) {
	var all []entity.TransactionItem
	for page := 0; ; page++ {
		path := fmt.Sprintf("/v1/%s/address/%s/transactions_v2/?page-number=%d&page-size=%d",
			url.PathEscape(chainName), url.PathEscape(address), page, c.pageSize)
		env, err := c.doGet(ctx, "transactions", path)
		if err != nil {
			return nil, err
		}

		var items []entity.TransactionItem
		if len(env.Data.Items) > 0 {
			if err := json.Unmarshal(env.Data.Items, &items); err != nil {
				return nil, &entity.UpstreamError{Endpoint: "transactions", Message: err.Error()}
			}
		}
		all = append(all, items...)

		if len(items) == 0 || env.Data.Pagination == nil || !env.Data.Pagination.HasMore {
			break
		}
	}
	c.logger.Debug("Drained transaction history",
		zap.String("chain", chainName), zap.String("address", address), zap.Int("txCount", len(all)))
	return all, nil
}
