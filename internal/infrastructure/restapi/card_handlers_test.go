package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet_card/internal/config"
	"wallet_card/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCardService records the parsed config and returns canned results.
type fakeCardService struct {
	lastConfig entity.CardConfig
	svg        string
	err        error
	chains     []entity.ChainDescriptor
	chainsErr  error
}

func (f *fakeCardService) GenerateCard(ctx context.Context, cfg entity.CardConfig) (string, error) {
	f.lastConfig = cfg
	return f.svg, f.err
}

func (f *fakeCardService) ListChains(ctx context.Context) ([]entity.ChainDescriptor, error) {
	return f.chains, f.chainsErr
}

func testDefaults() config.CardDefaults {
	return config.CardDefaults{
		Address:    "demo.eth",
		Chain:      "all-chains",
		Currency:   "USD",
		FontFamily: "monospace",
		FillColor:  "white",
		Style:      "standard",
	}
}

func newTestRouter(svc *fakeCardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterCardRoutes(router, NewCardHandler(svc, testDefaults(), zap.NewNop()))
	return router
}

func performRequest(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetCardDefaultsApplied(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/card")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "<svg/>", w.Body.String())
	assert.Equal(t, entity.CardConfig{
		Address:    "demo.eth",
		Chain:      "all-chains",
		Currency:   "USD",
		FontFamily: "monospace",
		FillColor:  "white",
		Style:      entity.StyleStandard,
	}, svc.lastConfig)
}

func TestGetCardQueryParams(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	w := performRequest(router,
		"/api/v1/card?address=vitalik.eth&chain=eth-mainnet&currency=eur&fontFamily=sans-serif&fillColor=%23ff0000&style=tokens")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.CardConfig{
		Address:    "vitalik.eth",
		Chain:      "eth-mainnet",
		Currency:   "EUR",
		FontFamily: "sans-serif",
		FillColor:  "#ff0000",
		Style:      entity.StyleTokens,
	}, svc.lastConfig)
}

func TestGetCardHexAddressLowercased(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	performRequest(router, "/api/v1/card?address=0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045")

	assert.Equal(t, "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", svc.lastConfig.Address)
}

func TestGetCardNameAddressKeepsCase(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	performRequest(router, "/api/v1/card?address=Vitalik.eth")

	assert.Equal(t, "Vitalik.eth", svc.lastConfig.Address)
}

func TestGetCardUnknownStyleFallsBack(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	performRequest(router, "/api/v1/card?style=sparkly")

	assert.Equal(t, entity.StyleStandard, svc.lastConfig.Style)
}

func TestGetCardEmptyParamsFallBack(t *testing.T) {
	svc := &fakeCardService{svg: "<svg/>"}
	router := newTestRouter(svc)

	performRequest(router, "/api/v1/card?address=&chain=&currency=")

	assert.Equal(t, "demo.eth", svc.lastConfig.Address)
	assert.Equal(t, "all-chains", svc.lastConfig.Chain)
	assert.Equal(t, "USD", svc.lastConfig.Currency)
}

func TestGetCardUnknownChain(t *testing.T) {
	svc := &fakeCardService{err: entity.ErrUnknownChain}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/card?chain=no-such-chain")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown chain")
}

func TestGetCardUpstreamError(t *testing.T) {
	svc := &fakeCardService{err: &entity.UpstreamError{Endpoint: "balances", StatusCode: 500, Status: "Internal Server Error"}}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/card")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "balances")
}

func TestGetCardInternalError(t *testing.T) {
	svc := &fakeCardService{err: errors.New("render exploded")}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/card")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details stay out of the response body.
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestGetChains(t *testing.T) {
	svc := &fakeCardService{chains: []entity.ChainDescriptor{{Name: "eth-mainnet", Label: "Ethereum Mainnet"}}}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/chains")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"eth-mainnet"`)
	assert.Contains(t, w.Body.String(), `"items"`)
}

func TestGetChainsUpstreamError(t *testing.T) {
	svc := &fakeCardService{chainsErr: &entity.UpstreamError{Endpoint: "chains", StatusCode: 503, Status: "Service Unavailable"}}
	router := newTestRouter(svc)

	w := performRequest(router, "/api/v1/chains")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeCardService{})

	w := performRequest(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
}
