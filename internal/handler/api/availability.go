package api

import (
	"net/http"
	"strings"

	"agrirent/internal/handler/httperr"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingMonth = errs.New("missing month query parameter")

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check equipment availability
// @Description Per-date remaining capacity for a date list or range. Advisory; the booking path re-checks under lock.
// @Tags availability
// @Produce json
// @Param equipmentId path string true "Equipment ID"
// @Param dates query string false "Comma-separated dates (YYYY-MM-DD)"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} shared.AvailabilityReport
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{equipmentId}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("equipmentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid equipment id", nil)
		return
	}

	var selected []string
	if raw := c.Query("dates"); raw != "" {
		selected = strings.Split(raw, ",")
	}

	report, err := h.q.CheckAvailability(c.Request.Context(), equipmentID, selected, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondBookingError(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Equipment booking calendar
// @Description Month view of confirmed and pending bookings per date
// @Tags availability
// @Produce json
// @Param equipmentId path string true "Equipment ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} queries.CalendarView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{equipmentId}/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("equipmentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid equipment id", nil)
		return
	}
	month := c.Query("month")
	if month == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingMonth, "month query parameter is required", nil)
		return
	}

	view, err := h.q.GetCalendar(c.Request.Context(), equipmentID, month)
	if err != nil {
		respondBookingError(c, err, "Failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, view)
}
