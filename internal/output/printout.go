package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayitek/borlette-pos/internal/env"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/shared/paths"
	"github.com/ayitek/borlette-pos/internal/types"
	"go.uber.org/zap"
)

// PrintJob is one rendered ticket waiting for the printer.
type PrintJob struct {
	Image  image.Image
	Serial string
}

var (
	printQueue   chan PrintJob
	printerMutex sync.Mutex
	workerOnce   sync.Once
)

func init() {
	printQueue = make(chan PrintJob, 100)
}

// InitializePrinter starts the print worker. Called from main after
// env.Value is populated.
func InitializePrinter() {
	workerOnce.Do(func() {
		go printWorker()
	})
	logger.Info("Printer subsystem initialized",
		zap.Bool("dry_run", env.Value.DryRunMode),
		zap.String("printer_address", printerAddress()))
}

func printerAddress() string {
	if env.Value.PrinterAddress == nil {
		return ""
	}
	return *env.Value.PrinterAddress
}

// PrintTicket renders a ticket and queues it for printing. Dry-run
// mode writes a PNG into the printout directory instead of feeding the
// printer, so a terminal without hardware still produces an artifact.
func PrintTicket(t types.Ticket, drawName, agentName string) error {
	img, err := RenderTicket(t, drawName, agentName)
	if err != nil {
		return err
	}

	if err := localdb.RecordPrintedTicket(t.Serial); err != nil {
		logger.Warn("Failed to record print-log entry", zap.Error(err))
	}

	if env.Value.DryRunMode {
		return savePrintout(img, t.Serial)
	}

	select {
	case printQueue <- PrintJob{Image: img, Serial: t.Serial}:
		return nil
	default:
		return fmt.Errorf("print queue is full")
	}
}

// QueueSize reports the number of tickets waiting for the printer.
func QueueSize() int {
	return len(printQueue)
}

// printWorker feeds queued jobs to the printer. Every job gets a fresh
// connect-print-disconnect cycle; persistent BLE connections corrupt
// after long idle periods.
func printWorker() {
	for job := range printQueue {
		const maxAttempts = 3
		var printed bool

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			printerMutex.Lock()
			err := printOnce(job.Image)
			printerMutex.Unlock()

			if err == nil {
				printed = true
				logger.Info("Ticket printed", zap.String("serial", job.Serial))
				break
			}
			logger.Error("Print attempt failed",
				zap.String("serial", job.Serial),
				zap.Int("attempt", attempt),
				zap.Error(err))
			time.Sleep(5 * time.Second)
		}

		if !printed {
			logger.Error("Dropping print job, saving image instead",
				zap.String("serial", job.Serial))
			if err := savePrintout(job.Image, job.Serial); err != nil {
				logger.Error("Failed to save fallback printout", zap.Error(err))
			}
		}
	}
}

func printOnce(img image.Image) error {
	addr := printerAddress()
	if addr == "" {
		return fmt.Errorf("printer address not configured")
	}

	backend, err := NewBluetoothPrinter(PrinterConfig{
		BluetoothAddress: addr,
		BestQuality:      env.Value.BestQuality,
		Dither:           env.Value.Dither,
		AutoRotate:       env.Value.AutoRotate,
		BlackPoint:       env.Value.BlackPoint,
		RotatePrint:      env.Value.RotatePrint,
	})
	if err != nil {
		return err
	}
	defer backend.Disconnect()

	if err := backend.Connect(); err != nil {
		return err
	}
	return backend.Print(img)
}

// savePrintout writes the rendered ticket into the printout directory.
func savePrintout(img image.Image, serial string) error {
	name := fmt.Sprintf("%s_%s.png", time.Now().Format("20060102_150405"), serial)
	path := filepath.Join(paths.PrintOutDir(), name)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create printout file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode printout: %w", err)
	}
	logger.Info("Printout saved", zap.String("path", path))
	return nil
}
