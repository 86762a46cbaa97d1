package api

import (
	"net/http"

	resdto "agrirent/internal/handler/dto/response"
	"agrirent/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	sweeper commands.SweeperCommands
}

func NewAdminHandler(sweeper commands.SweeperCommands) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// @Summary Sweep expired payment holds
// @Description Release every payment hold past its expiry. The background sweeper runs this on an interval; the endpoint exists for operators.
// @Tags admin
// @Produce json
// @Success 200 {object} resdto.SweepResponse
// @Failure 500 {object} map[string]string
// @Router /admin/sweep-holds [post]
func (h *AdminHandler) SweepHolds(c *gin.Context) {
	released, err := h.sweeper.SweepExpiredHolds(c.Request.Context())
	if err != nil {
		respondBookingError(c, err, "Sweep failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SweepResponse{ReleasedHolds: released})
}
