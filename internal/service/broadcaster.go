package service

import "vibeform/internal/model"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastSnapshot(sessionID string, snap *model.FillSnapshot)
	CloseSession(sessionID string)
}
