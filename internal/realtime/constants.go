package realtime

import "time"

const (
	// writeWait is the deadline for a single websocket write.
	writeWait = 5 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out at a fraction of this.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames; clients only ever send pongs and
	// the occasional close.
	maxMessageSize = 512

	// sendBufferSize is the per-client outbound queue. A client that cannot
	// drain this is disconnected rather than allowed to stall the hub.
	sendBufferSize = 16

	readBufferSize  = 1024
	writeBufferSize = 4096
)

// DefaultTokenTTL is how long a connection token stays valid.
const DefaultTokenTTL = 5 * time.Minute

// Event types pushed to clients.
const (
	EventTypeTick             = "tick"
	EventTypeInventoryChanged = "inventory_changed"
	EventTypeActivityComplete = "activity_complete"
)
