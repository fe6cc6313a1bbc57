package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tableside/order-svc/internal/domain"

	"go.uber.org/zap"
)

// streamOrderEvents writes the order's current status, then every later
// change, as server-sent events until the client goes away.
func (h *Handler) streamOrderEvents(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "streaming unsupported"})
		return
	}

	events := make(chan domain.StatusEvent, 16)
	done := make(chan struct{})
	order, unsubscribe, err := h.Orders.Subscribe(r.Context(), orderID, func(event domain.StatusEvent) {
		select {
		case events <- event:
		case <-done:
		}
	})
	if err != nil {
		close(done)
		h.writeError(w, r, err)
		return
	}
	defer func() {
		close(done)
		unsubscribe()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	current := order.StatusEvent()
	if err := writeEvent(w, current); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	heard := false

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("Status stream closed", zap.Int("order_id", orderID))
			return
		case <-ticker.C:
			// A quiet interval may hide an event lost upstream.
			if !heard {
				if latest, ok := h.resync(r, orderID, current); ok {
					current = latest
					if err := writeEvent(w, latest); err != nil {
						return
					}
					flusher.Flush()
					continue
				}
			}
			heard = false
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event := <-events:
			heard = true
			if event.Version < current.Version {
				continue
			}
			current = event
			if err := writeEvent(w, event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// resync re-reads the order and reports whether it is newer than current.
func (h *Handler) resync(r *http.Request, orderID int, current domain.StatusEvent) (domain.StatusEvent, bool) {
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		if r.Context().Err() == nil {
			h.logger.Debug("Status stream resync failed", zap.Int("order_id", orderID), zap.Error(err))
		}
		return current, false
	}
	latest := order.StatusEvent()
	if latest.Version <= current.Version {
		return current, false
	}
	h.logger.Info("Status stream caught up on a missed change",
		zap.Int("order_id", orderID),
		zap.Int("from_version", current.Version),
		zap.Int("to_version", latest.Version))
	return latest, true
}

func writeEvent(w http.ResponseWriter, event domain.StatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: status\ndata: %s\n\n", data)
	return err
}
