package models

import (
	"encoding/json"
	"io"
	"time"
)

// Acknowledgement is the literal body returned for every accepted payload
const Acknowledgement = "OK"

// Asset represents an opened file from one of the served directories
type Asset struct {
	Name    string
	Size    int64
	ModTime time.Time
	Content io.ReadSeeker

	closer io.Closer
}

// NewAsset creates an asset; closer may be nil
func NewAsset(name string, size int64, modTime time.Time, content io.ReadSeeker, closer io.Closer) *Asset {
	return &Asset{
		Name:    name,
		Size:    size,
		ModTime: modTime,
		Content: content,
		closer:  closer,
	}
}

// Close releases the underlying file
func (a *Asset) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// SaveRecord represents one payload accepted by the save-data endpoint.
// It is never stored; it only lives for the request that produced it.
type SaveRecord struct {
	RequestID  string          `json:"request_id"`
	IsJSON     bool            `json:"is_json"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}
