package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

type MeHandler struct {
	catalog domain.Catalog
	log     *zap.Logger
}

func NewMeHandler(catalog domain.Catalog, log *zap.Logger) *MeHandler {
	return &MeHandler{catalog: catalog, log: log}
}

// GetMe returns the stored account of the caller and, for barbers and
// employees, their provider profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.catalog.GetUser(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp := gin.H{"user": user}

	if !user.IsCustomer() {
		provider, err := h.catalog.GetProvider(ctx, user.ID)
		switch {
		case err == nil:
			resp["provider"] = provider
		case !errors.Is(err, domain.ErrNotFound):
			writeError(c, h.log, err)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}
