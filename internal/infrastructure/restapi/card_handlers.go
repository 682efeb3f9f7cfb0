package restapi

import (
	"errors"
	"net/http"
	"strings"

	"wallet_card/internal/app/port"
	"wallet_card/internal/config"
	"wallet_card/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CardHandler handles the card generation endpoint.
type CardHandler struct {
	cardService port.CardService
	defaults    config.CardDefaults
	logger      *zap.Logger
}

// NewCardHandler creates a new instance of CardHandler.
func NewCardHandler(cs port.CardService, defaults config.CardDefaults, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cs,
		defaults:    defaults,
		logger:      logger.Named("CardHandler"),
	}
}

// GetCardHandler serves GET /api/v1/card: parse query parameters, run the
// pipeline, return the SVG document.
func (h *CardHandler) GetCardHandler(c *gin.Context) {
	cfg := h.parseCardConfig(c)

	svg, err := h.cardService.GenerateCard(c.Request.Context(), cfg)
	if err != nil {
		var upstream *entity.UpstreamError
		switch {
		case errors.Is(err, entity.ErrUnknownChain):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &upstream):
			h.logger.Error("Upstream failure while generating card",
				zap.String("address", cfg.Address), zap.String("endpoint", upstream.Endpoint), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to generate card", zap.String("address", cfg.Address), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate card"})
		}
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// GetChainsHandler serves GET /api/v1/chains with the provider's catalog.
func (h *CardHandler) GetChainsHandler(c *gin.Context) {
	chains, err := h.cardService.ListChains(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list chains", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"items": chains}})
}

// parseCardConfig builds the request configuration from query parameters.
// Parsing is permissive: a missing or malformed value falls back to its
// default instead of failing the request.
func (h *CardHandler) parseCardConfig(c *gin.Context) entity.CardConfig {
	address := strings.TrimSpace(c.DefaultQuery("address", h.defaults.Address))
	if address == "" {
		address = h.defaults.Address
	}
	// Hex addresses compare case-insensitively; resolvable names do not.
	if common.IsHexAddress(address) {
		address = strings.ToLower(address)
	}

	chain := strings.TrimSpace(c.DefaultQuery("chain", h.defaults.Chain))
	if chain == "" {
		chain = h.defaults.Chain
	}

	currency := strings.ToUpper(strings.TrimSpace(c.DefaultQuery("currency", h.defaults.Currency)))
	if currency == "" {
		currency = strings.ToUpper(h.defaults.Currency)
	}

	fontFamily := c.DefaultQuery("fontFamily", h.defaults.FontFamily)
	if fontFamily == "" {
		fontFamily = h.defaults.FontFamily
	}
	fillColor := c.DefaultQuery("fillColor", h.defaults.FillColor)
	if fillColor == "" {
		fillColor = h.defaults.FillColor
	}

	return entity.CardConfig{
		Address:    address,
		Chain:      chain,
		Currency:   currency,
		FontFamily: fontFamily,
		FillColor:  fillColor,
		Style:      parseStyle(c.DefaultQuery("style", h.defaults.Style)),
	}
}

func parseStyle(raw string) entity.CardStyle {
	switch entity.CardStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case entity.StyleTransactions:
		return entity.StyleTransactions
	case entity.StyleTokens:
		return entity.StyleTokens
	default:
		return entity.StyleStandard
	}
}
