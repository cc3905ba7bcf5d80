package handler

import (
	"net/http"

	"gudlft/internal/bookings/events"
	"gudlft/internal/bookings/service"
	httputil "gudlft/pkg/http"
	"gudlft/pkg/logger"
	"gudlft/pkg/middleware"
	"gudlft/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SummaryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Summary", err)
		return
	}

	summary, err := h.service.Summary(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Summary", err)
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Summary", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Competitions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	comps, err := h.service.Competitions(r.Context())
	if err != nil {
		h.writeError(w, "Competitions", err)
		return
	}

	if err := httputil.WriteList(w, comps, len(comps)); err != nil {
		h.log.Error("failed to write list response", "handler", "Competitions", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) OpenBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.OpenBooking(r.Context(), ps.ByName("competition"), ps.ByName("club"))
	if err != nil {
		h.writeError(w, "OpenBooking", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "OpenBooking", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PurchaseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Purchase", err)
		return
	}

	ctx := events.WithCorrelationID(r.Context(), middleware.RequestID(r.Context()))
	result, err := h.service.Purchase(ctx, &req)
	if err != nil {
		h.writeError(w, "Purchase", err)
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Purchase", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Board(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		h.writeError(w, "Board", err)
		return
	}

	if err := httputil.WriteList(w, board, len(board)); err != nil {
		h.log.Error("failed to write list response", "handler", "Board", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) ClubBoard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	board, err := h.service.ClubBoard(r.Context(), ps.ByName("club"))
	if err != nil {
		h.writeError(w, "ClubBoard", err)
		return
	}

	if err := httputil.WriteSuccess(w, board); err != nil {
		h.log.Error("failed to write success response", "handler", "ClubBoard", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/summary", h.Summary)
	router.GET("/api/v1/competitions", h.Competitions)
	router.GET("/api/v1/book/:competition/:club", h.OpenBooking)
	router.POST("/api/v1/purchases", h.Purchase)
	router.GET("/api/v1/board", h.Board)
	router.GET("/api/v1/board/:club", h.ClubBoard)
}
