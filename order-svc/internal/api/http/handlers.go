package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	Board   service.BoardServiceInterface
	Tables  service.TableQRInterface

	// KeepAlive is the interval between comment frames on idle event streams.
	KeepAlive time.Duration

	logger *zap.Logger
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	orders service.OrderServiceInterface,
	board service.BoardServiceInterface,
	tables service.TableQRInterface,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Catalog:   catalog,
		Orders:    orders,
		Board:     board,
		Tables:    tables,
		KeepAlive: 15 * time.Second,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants/{restaurantId}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu/cache", h.invalidateMenu).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNumber}", h.getTable).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables/{tableNumber}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants/{restaurantId}/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/orders/active", h.getActiveOrders).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/orders/history", h.getOrderHistory).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/board", h.getBoard).Methods("GET")

	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/events", h.streamOrderEvents).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	menu, err := h.Catalog.FetchMenu(r.Context(), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// invalidateMenu lets whatever edits the catalog drop the cached snapshot.
func (h *Handler) invalidateMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	if err := h.Catalog.InvalidateMenu(r.Context(), restaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	tableNumber, ok := pathInt(w, r, "tableNumber")
	if !ok {
		return
	}
	table, err := h.Orders.ResolveTable(r.Context(), restaurantID, tableNumber)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	tableNumber, ok := pathInt(w, r, "tableNumber")
	if !ok {
		return
	}
	if _, err := h.Orders.ResolveTable(r.Context(), restaurantID, tableNumber); err != nil {
		h.writeError(w, r, err)
		return
	}

	png, err := h.Tables.PNG(restaurantID, tableNumber)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}

	var req domain.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON format: " + err.Error()})
		return
	}
	req.RestaurantID = restaurantID

	result, err := h.Orders.Submit(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getActiveOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	orders, err := h.Board.ListActive(r.Context(), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be an integer"})
			return
		}
		limit = n
	}

	orders, err := h.Board.ListHistory(r.Context(), restaurantID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(w, r, "restaurantId")
	if !ok {
		return
	}
	board, err := h.Board.Board(r.Context(), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON format: " + err.Error()})
		return
	}
	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.Orders.Advance(r.Context(), orderID, target)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type errorBody struct {
	Error string             `json:"error"`
	Lines []domain.LineError `json:"lines,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validation.Reason, Lines: validation.Lines})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrTransitionRejected):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || n <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid " + name})
		return 0, false
	}
	return n, true
}

func nonNil(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}
