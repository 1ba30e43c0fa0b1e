package output

import "image"

// PrinterBackend is the common interface over printer implementations.
type PrinterBackend interface {
	Connect() error
	Print(img image.Image) error
	Disconnect() error
	IsConnected() bool
}

// PrinterConfig carries the connection and rendering settings for a
// printer backend.
type PrinterConfig struct {
	BluetoothAddress string
	BestQuality      bool
	Dither           bool
	AutoRotate       bool
	BlackPoint       float32
	RotatePrint      bool
}
