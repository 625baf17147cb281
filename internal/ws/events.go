package ws

import "encoding/json"

// Event actions broadcast over the stock feed.
const (
	ActionProductCreated   = "product_created"
	ActionProductUpdated   = "product_updated"
	ActionProductDeleted   = "product_deleted"
	ActionMovementRecorded = "movement_recorded"
	ActionStockAdjusted    = "stock_adjusted"
)

// StockEvent is the payload pushed to websocket clients whenever the ledger
// or the product store changes observable state.
type StockEvent struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
	Actor   string      `json:"actor,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Notify serializes and broadcasts an event without blocking the caller.
// Safe to call on a nil hub (services constructed without a feed, e.g. tests).
func (h *Hub) Notify(ev StockEvent) {
	if h == nil {
		return
	}
	if ev.Type == "" {
		ev.Type = "stock_update"
	}
	go func() {
		msg, err := json.Marshal(ev)
		if err != nil {
			return
		}
		h.Broadcast <- msg
	}()
}
