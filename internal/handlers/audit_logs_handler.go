package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader  audit.Reader
	catalog domain.Catalog
	log     *zap.Logger
}

func NewAuditLogsHandler(reader audit.Reader, catalog domain.Catalog, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, catalog: catalog, log: log}
}

// List shows the booking trail of the caller's barbershop. Only providers
// have one.
func (h *AuditLogsHandler) List(c *gin.Context) {
	provider, err := h.catalog.GetProvider(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrRoleNotAllowed
		}
		writeError(c, h.log, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.reader.ListAuditLogs(c.Request.Context(), audit.Filter{
		ProviderID: provider.ShopID(),
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"logs":  logs,
	})
}
