package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"orderboard/board-svc/internal/mxtime"
	"orderboard/board-svc/internal/realtime"
	"orderboard/board-svc/internal/report"
	"orderboard/board-svc/internal/service"
	"orderboard/board-svc/internal/state"
)

const defaultPageSize = 20

type Handler struct {
	Board     service.BoardServiceInterface
	Mirror    *state.Store
	Recon     *realtime.Reconciler
	Analytics service.AnalyticsSource
	QR        service.QRGenerator
}

func NewHandler(board service.BoardServiceInterface, mirror *state.Store, recon *realtime.Reconciler, analytics service.AnalyticsSource, qr service.QRGenerator) *Handler {
	return &Handler{
		Board:     board,
		Mirror:    mirror,
		Recon:     recon,
		Analytics: analytics,
		QR:        qr,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/state", h.getState).Methods("GET")

	r.HandleFunc("/api/orders", h.addOrder).Methods("POST")
	r.HandleFunc("/api/orders/clear", h.clearHistory).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.updateOrder).Methods("PUT")
	r.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants", h.addRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{name}", h.deleteRestaurant).Methods("DELETE")

	r.HandleFunc("/api/seed", h.seedOrders).Methods("POST")

	r.HandleFunc("/api/history", h.getHistory).Methods("GET")
	r.HandleFunc("/api/export.csv", h.exportCSV).Methods("GET")

	r.HandleFunc("/api/reports/hourly", h.getHourlyReport).Methods("GET")
	r.HandleFunc("/api/reports/weekly", h.getWeeklyReport).Methods("GET")
	r.HandleFunc("/api/reports/range", h.getRangeReport).Methods("GET")
	r.HandleFunc("/api/reports/month", h.getMonthReport).Methods("GET")
	r.HandleFunc("/api/reports/year", h.getYearReport).Methods("GET")

	r.HandleFunc("/api/analytics/daily", h.getDailyAnalytics).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "board-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// refresh pulls a fresh snapshot into the mirror. On failure the mirror
// stays at its last-known-good contents.
func (h *Handler) refresh() {
	restaurants, orders, err := h.Board.State()
	if err != nil {
		log.Printf("Warning: failed to refresh state: %v", err)
		return
	}
	h.Recon.Resync(restaurants, orders)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	restaurants, orders, err := h.Board.State()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.Recon.Resync(restaurants, orders)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
		"orders":      orders,
	})
}

func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Restaurant string  `json:"restaurant"`
		Amount     float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	order, err := h.Board.AddOrder(payload.Restaurant, payload.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var payload struct {
		Restaurant *string  `json:"restaurant"`
		Amount     *float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	order, err := h.Board.UpdateOrder(id, payload.Restaurant, payload.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Board.DeleteOrder(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Board.ClearHistory(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *Handler) addRestaurant(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	rest, err := h.Board.AddRestaurant(payload.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "restaurant": rest})
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Board.DeleteRestaurant(mux.Vars(r)["name"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *Handler) seedOrders(w http.ResponseWriter, r *http.Request) {
	var cfg service.SeedConfig
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
	}

	created, err := h.Board.Seed(cfg)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "created": created})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	h.refresh()

	mode := report.OrderSort(r.URL.Query().Get("sort"))
	if mode == "" {
		mode = report.OrdersByDateDesc
	}
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", defaultPageSize)
	if page < 1 || size < 1 {
		http.Error(w, "Invalid page or size", http.StatusBadRequest)
		return
	}

	sorted := report.SortOrders(h.Mirror.Orders(), mode)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":  report.Paginate(sorted, size, page),
		"page":    page,
		"pages":   report.PageCount(len(sorted), size),
		"total":   len(sorted),
		"summary": report.Summarize(sorted),
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	h.refresh()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pedidos.csv"`)
	w.Write([]byte(report.ExportCSV(h.Mirror.Orders())))
}

func (h *Handler) getHourlyReport(w http.ResponseWriter, r *http.Request) {
	h.refresh()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = mxtime.Today()
	}
	writeJSON(w, http.StatusOK, report.HourlyHistogram(h.Mirror.Orders(), date))
}

func (h *Handler) getWeeklyReport(w http.ResponseWriter, r *http.Request) {
	h.refresh()
	writeJSON(w, http.StatusOK, report.WeeklyHistogram(h.Mirror.Orders(), mxtime.CurrentWeekDates()))
}

func (h *Handler) getRangeReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "Missing from or to", http.StatusBadRequest)
		return
	}
	h.writeRangeReport(w, r, from, to)
}

func (h *Handler) getMonthReport(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", 0)
	month := queryInt(r, "month", 0)
	if year == 0 || month < 1 || month > 12 {
		http.Error(w, "Invalid year or month", http.StatusBadRequest)
		return
	}
	from, to := report.MonthRange(year, time.Month(month))
	h.writeRangeReport(w, r, from, to)
}

func (h *Handler) getYearReport(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", 0)
	if year == 0 {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	from, to := report.YearRange(year)
	h.writeRangeReport(w, r, from, to)
}

func (h *Handler) writeRangeReport(w http.ResponseWriter, r *http.Request, from, to string) {
	h.refresh()

	mode := report.RangeMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = report.RangeByRestaurant
	}
	restaurant := r.URL.Query().Get("restaurant")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"from":   from,
		"to":     to,
		"mode":   mode,
		"points": report.RangeHistogram(h.Mirror.Orders(), from, to, mode, restaurant),
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.refresh()
	found := false
	for _, order := range h.Mirror.Orders() {
		if order.ID == id {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	png, err := h.QR.Generate(id)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) getDailyAnalytics(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = mxtime.Today()
	}

	snapshot, err := h.Analytics.Daily(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingRestaurant),
		errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrMissingID),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNoRestaurants):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
