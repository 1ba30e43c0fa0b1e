package output

import (
	"fmt"
	"image"
	"time"

	"git.massivebox.net/massivebox/go-catprinter"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

// BluetoothPrinter drives the thermal receipt printer over BLE.
type BluetoothPrinter struct {
	client    *catprinter.Client
	opts      *catprinter.PrinterOptions
	address   string
	connected bool
	config    PrinterConfig
}

func NewBluetoothPrinter(config PrinterConfig) (*BluetoothPrinter, error) {
	if config.BluetoothAddress == "" {
		return nil, fmt.Errorf("bluetooth address is required")
	}
	return &BluetoothPrinter{
		address: config.BluetoothAddress,
		config:  config,
	}, nil
}

func (p *BluetoothPrinter) Connect() error {
	// Full reset when a client already exists; stale BLE state causes
	// silent print failures.
	if p.client != nil {
		logger.Info("Resetting printer client for new connection")
		if p.connected {
			p.client.Disconnect()
			p.connected = false
		}
		p.client.Stop()
		p.client = nil
		time.Sleep(2000 * time.Millisecond)
	}

	instance, err := catprinter.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create catprinter client: %w", err)
	}
	p.client = instance

	p.opts = catprinter.NewOptions().
		SetBestQuality(p.config.BestQuality).
		SetDither(p.config.Dither).
		SetAutoRotate(p.config.AutoRotate).
		SetBlackPoint(p.config.BlackPoint)

	logger.Info("Connecting to Bluetooth printer", zap.String("address", p.address))
	if err := p.client.Connect(p.address); err != nil {
		return fmt.Errorf("failed to connect to printer: %w", err)
	}

	// Wait out BLE parameter negotiation before the first write.
	time.Sleep(1000 * time.Millisecond)

	p.connected = true
	logger.Info("Successfully connected to Bluetooth printer")
	return nil
}

func (p *BluetoothPrinter) Print(img image.Image) error {
	if !p.connected || p.client == nil {
		return fmt.Errorf("printer not connected")
	}

	finalImg := img
	if p.config.RotatePrint {
		finalImg = rotateImage180(img)
	}

	if err := p.client.Print(finalImg, p.opts, false); err != nil {
		return fmt.Errorf("failed to print: %w", err)
	}

	// Thermal printers feed at ~10mm/s. Base 2s + 1s per 60 pixels so
	// the next job never starts mid-feed.
	height := finalImg.Bounds().Dy()
	waitSec := 2 + (height / 60)
	if waitSec < 3 {
		waitSec = 3
	}
	logger.Info("Print finished, waiting for paper feed",
		zap.Int("height_px", height),
		zap.Int("wait_seconds", waitSec))
	time.Sleep(time.Duration(waitSec) * time.Second)

	return nil
}

func (p *BluetoothPrinter) Disconnect() error {
	if p.client != nil {
		if p.connected {
			logger.Info("Disconnecting Bluetooth printer")
			p.client.Disconnect()
			p.connected = false
		}
		p.client.Stop()
		p.client = nil
	}
	return nil
}

func (p *BluetoothPrinter) IsConnected() bool {
	return p.connected
}

// rotateImage180 flips the image for printers mounted upside down.
func rotateImage180(img image.Image) image.Image {
	bounds := img.Bounds()
	rotated := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rotated.Set(bounds.Max.X-1-x+bounds.Min.X, bounds.Max.Y-1-y+bounds.Min.Y, img.At(x, y))
		}
	}
	return rotated
}
