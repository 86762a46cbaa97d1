package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "agrirent/internal/handler/dto/request"
	resdto "agrirent/internal/handler/dto/response"
	"agrirent/internal/handler/httperr"
	"agrirent/internal/handler/middleware"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/commands"
	"agrirent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds     commands.BookingCommands
	payments commands.PaymentCommands
	q        queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, payments commands.PaymentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, payments: payments, q: q}
}

// respondBookingError translates usecase sentinels into HTTP status codes.
// Availability failures carry the per-date report as response detail.
func respondBookingError(c *gin.Context, err error, msg string) {
	var availErr *commands.AvailabilityError
	if errors.As(err, &availErr) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Equipment not available for the requested dates", availErr.Report)
		return
	}

	switch {
	case errors.Is(err, errs.ErrBookingNotFound), errors.Is(err, errs.ErrEquipmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errors.Is(err, errs.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, errs.ErrNoDatesProvided),
		errors.Is(err, errs.ErrInvalidDateWindow),
		errors.Is(err, errs.ErrDateNotInBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errors.Is(err, errs.ErrInvalidStatus),
		errors.Is(err, errs.ErrAvailabilityChanged),
		errors.Is(err, errs.ErrHoldExpired):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

// @Summary Create booking
// @Description Create a direct booking awaiting owner approval
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrAccessDenied, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateBooking(c.Request.Context(), req.ToCommand(renterID))
	if err != nil {
		respondBookingError(c, err, "Create booking failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingSnapshot(result.Booking))
}

// @Summary Create payment hold
// @Description Soft-reserve capacity while payment is processed
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Create payment hold request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/payment-hold [post]
func (h *BookingHandler) CreatePaymentHold(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrAccessDenied, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreatePaymentHold(c.Request.Context(), req.ToCommand(renterID))
	if err != nil {
		respondBookingError(c, err, "Create payment hold failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingSnapshot(result.Booking))
}

// @Summary Confirm payment
// @Description Settle an open payment hold; the booking moves to pending owner approval
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmPaymentRequest true "Payment confirmation"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm-payment [put]
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	err := h.payments.ConfirmPayment(c.Request.Context(), id, actorID, commands.ConfirmPaymentRequest{
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondBookingError(c, err, "Confirm payment failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Fail payment
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/fail-payment [put]
func (h *BookingHandler) FailPayment(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	if err := h.payments.FailPayment(c.Request.Context(), id, actorID); err != nil {
		respondBookingError(c, err, "Fail payment failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Cancel payment
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/cancel-payment [put]
func (h *BookingHandler) CancelPayment(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	if err := h.payments.CancelPayment(c.Request.Context(), id, actorID); err != nil {
		respondBookingError(c, err, "Cancel payment failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Accept booking
// @Description Owner approves a pending booking; capacity is re-checked
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/accept [put]
func (h *BookingHandler) Accept(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.AcceptBooking(c.Request.Context(), id, actorID); err != nil {
		respondBookingError(c, err, "Accept booking failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Reject booking
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/reject [put]
func (h *BookingHandler) Reject(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.RejectBooking(c.Request.Context(), id, actorID); err != nil {
		respondBookingError(c, err, "Reject booking failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Complete booking
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/complete [put]
func (h *BookingHandler) Complete(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.CompleteBooking(c.Request.Context(), id, actorID); err != nil {
		respondBookingError(c, err, "Complete booking failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Update booking
// @Description Reschedule dates, adjust amount, or change status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateBooking(c.Request.Context(), id, actorID, req.ToCommand()); err != nil {
		respondBookingError(c, err, "Update booking failed")
		return
	}
	h.respondWithView(c, actorID, id)
}

// @Summary Cancel booking dates
// @Description Cancel some or all dates; cancelling every date cancels the booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelDatesRequest true "Dates to cancel"
// @Success 200 {object} resdto.CancelDatesResponse
// @Router /bookings/{id}/cancel-dates [put]
func (h *BookingHandler) CancelDates(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	var req reqdto.CancelDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CancelDates(c.Request.Context(), id, actorID, req.Dates)
	if err != nil {
		respondBookingError(c, err, "Cancel dates failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelDatesResult(result))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, actorID, ok := h.bookingAndActor(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		respondBookingError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings filtered by role, equipment, status, and date range
// @Tags bookings
// @Produce json
// @Param role query string false "Filter by role: renter or owner (default renter)"
// @Param equipment_id query string false "Filter by equipment"
// @Param status query string false "Filter by status"
// @Param from query string false "Overlap window start (YYYY-MM-DD)"
// @Param to query string false "Overlap window end (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 50)"
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrAccessDenied, "Unauthorized", nil)
		return
	}

	filter := queries.BookingListFilter{}
	if c.Query("role") == "owner" {
		filter.OwnerID = &actorID
	} else {
		filter.RenterID = &actorID
	}
	if v := c.Query("equipment_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid equipment_id", nil)
			return
		}
		filter.EquipmentID = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("from"); v != "" {
		filter.From = &v
	}
	if v := c.Query("to"); v != "" {
		filter.To = &v
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = iv
		}
	}

	items, err := h.q.List(c.Request.Context(), filter, limit)
	if err != nil {
		respondBookingError(c, err, "Failed to list bookings")
		return
	}
	result := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		result[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) bookingAndActor(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrAccessDenied, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, actorID, true
}

func (h *BookingHandler) respondWithView(c *gin.Context, actorID, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
