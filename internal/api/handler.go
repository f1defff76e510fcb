package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/insynpulse/internal/domain/dto"
	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/middleware"
	"github.com/guttosm/insynpulse/internal/registry"
	"github.com/guttosm/insynpulse/internal/service"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler provides HTTP handlers for insider transaction endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Interact with the service layer for data access and registry lookups
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.TransactionService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.TransactionService): Service dependency used for querying transactions.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.TransactionService) *Handler {
	return &Handler{svc: svc}
}

// parseDate reads an optional YYYY-MM-DD query parameter as a Stockholm
// calendar day, the zone registry timestamps are stored in.
func parseDate(c *gin.Context, name string) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, registry.Stockholm)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format, expected YYYY-MM-DD", name)
	}
	return &d, nil
}

// serviceError maps service failures onto HTTP responses.
func serviceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingIssuer),
		errors.Is(err, service.ErrMissingTerm),
		errors.Is(err, service.ErrInvalidRange):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request parameters", err)
	case errors.Is(err, service.ErrNoSuggester):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, message, err)
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, message, err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, message, err)
	}
}

// ListTransactions handles GET /api/v1/transactions requests.
//
// ListTransactions godoc
// @Summary      List insider transactions
// @Description  Returns the most recent ingested transactions, optionally filtered by issuer, PDMR and transaction date
// @Tags         transactions
// @Produce      json
// @Param        issuer  query     string  false  "Issuer name" example(Swedish Match AB)
// @Param        pdmr    query     string  false  "Person discharging managerial responsibilities"
// @Param        from    query     string  false  "Earliest transaction date in YYYY-MM-DD" example(2024-03-01)
// @Param        to      query     string  false  "Latest transaction date in YYYY-MM-DD" example(2024-03-08)
// @Param        limit   query     int     false  "Maximum rows (1-1000)" default(100)
// @Success      200     {object}  dto.TransactionListResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse            "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	// ─── Parse optional filters ───────────────────────────────
	from, err := parseDate(c, "from")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request parameters", err)
		return
	}
	to, err := parseDate(c, "to")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request parameters", err)
		return
	}

	limit := defaultLimit
	if s := strings.TrimSpace(c.Query("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxLimit {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid request parameters",
				fmt.Errorf("limit must be an integer between 1 and %d", maxLimit))
			return
		}
		limit = n
	}

	filter := models.TransactionFilter{
		Issuer: c.Query("issuer"),
		PDMR:   c.Query("pdmr"),
		From:   from,
		To:     to,
		Limit:  limit,
	}

	// ─── Query service (with request context) ─────────────────
	out, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, "failed to fetch transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(out))
}

// GetIssuerSummary handles GET /api/v1/issuers/summary requests.
//
// Query Parameters:
//   - issuer (string, required): Issuer name as published by the registry.
//   - from (string, optional): Minimum transaction date in YYYY-MM-DD format.
//
// Responses:
//   - 200 OK: Returns IssuerSummaryResponse.
//   - 400 Bad Request: Missing or invalid query parameters.
//   - 404 Not Found: No transactions found for the given issuer/date range.
//   - 500 Internal Server Error: Failure in service or database layer.
//
// GetIssuerSummary godoc
// @Summary      Summarize an issuer's insider transactions
// @Description  Returns count, total volume, max price and latest transaction date for an issuer since an optional start date
// @Tags         issuers
// @Produce      json
// @Param        issuer  query     string  true   "Issuer name" example(Swedish Match AB)
// @Param        from    query     string  false  "Start date in YYYY-MM-DD" example(2024-03-01)
// @Success      200     {object}  dto.IssuerSummaryResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse          "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse          "Not Found"
// @Failure      500     {object}  dto.ErrorResponse          "Internal Error"
// @Router       /api/v1/issuers/summary [get]
func (h *Handler) GetIssuerSummary(c *gin.Context) {
	issuer := strings.TrimSpace(c.Query("issuer"))
	if issuer == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "issuer is required", nil)
		return
	}

	from, err := parseDate(c, "from")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request parameters", err)
		return
	}

	sum, err := h.svc.IssuerSummary(c.Request.Context(), issuer, from, nil)
	if err != nil {
		serviceError(c, "failed to fetch issuer summary", err)
		return
	}
	if sum == nil {
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}

	c.JSON(http.StatusOK, dto.NewIssuerSummaryResponse(*sum))
}

// Suggest handles GET /api/v1/suggest requests by proxying the registry's autocomplete.
//
// Suggest godoc
// @Summary      Autocomplete issuer or PDMR names
// @Description  Exactly one of issuer or pdmr must be given; the value is used as search term against the registry
// @Tags         registry
// @Produce      json
// @Param        issuer  query     string  false  "Issuer name prefix" example(Swe)
// @Param        pdmr    query     string  false  "PDMR name prefix"
// @Success      200     {object}  dto.SuggestResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse    "Bad Request"
// @Failure      502     {object}  dto.ErrorResponse    "Registry Error"
// @Failure      503     {object}  dto.ErrorResponse    "Registry lookups disabled"
// @Router       /api/v1/suggest [get]
func (h *Handler) Suggest(c *gin.Context) {
	issuer, hasIssuer := c.GetQuery("issuer")
	pdmr, hasPDMR := c.GetQuery("pdmr")
	if hasIssuer == hasPDMR {
		middleware.AbortWithError(c, http.StatusBadRequest, "exactly one of issuer or pdmr is required", nil)
		return
	}

	field, name, term := registry.SuggestIssuer, "issuer", issuer
	if hasPDMR {
		field, name, term = registry.SuggestPDMR, "pdmr", pdmr
	}

	names, err := h.svc.Suggest(c.Request.Context(), field, term)
	if err != nil {
		if errors.Is(err, service.ErrMissingTerm) || errors.Is(err, service.ErrNoSuggester) || errors.Is(err, context.DeadlineExceeded) {
			serviceError(c, "registry lookup failed", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadGateway, "registry lookup failed", err)
		return
	}
	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, dto.SuggestResponse{Field: name, Term: strings.TrimSpace(term), Suggestions: names})
}
