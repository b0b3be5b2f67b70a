package texture

import (
	"image"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/logger"
)

// Ticket identifies one load request.
type Ticket uint64

// Result is a finished load. Exactly one of Image and Err is set.
type Result struct {
	Ticket Ticket
	Path   string
	Image  *image.RGBA // bottom-up rows, ready for upload
	Err    error       // *gpu.TextureLoadError
}

// Loader reads and decodes images on background goroutines and hands the
// results back to the frame thread through Poll. GPU upload is left to the
// caller since only the context thread may touch the device.
type Loader struct {
	readFile func(string) ([]byte, error)

	mu      sync.Mutex
	next    Ticket
	results []Result
	wg      sync.WaitGroup
}

// NewLoader returns a loader reading from the local filesystem.
func NewLoader() *Loader {
	return &Loader{readFile: os.ReadFile}
}

// Request starts loading path and returns immediately.
func (l *Loader) Request(path string) Ticket {
	l.mu.Lock()
	l.next++
	ticket := l.next
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		res := l.load(ticket, path)

		l.mu.Lock()
		l.results = append(l.results, res)
		l.mu.Unlock()
	}()

	logger.Debug("background load requested", zap.String("path", path), zap.Uint64("ticket", uint64(ticket)))
	return ticket
}

func (l *Loader) load(ticket Ticket, path string) Result {
	res := Result{Ticket: ticket, Path: path}

	data, err := l.readFile(path)
	if err != nil {
		res.Err = &gpu.TextureLoadError{Path: path, Err: err}
		return res
	}
	img, err := Decode(path, data)
	if err != nil {
		res.Err = &gpu.TextureLoadError{Path: path, Err: err}
		return res
	}
	res.Image = ToRGBA(img, true)
	return res
}

// Poll returns the loads that finished since the last call without blocking.
func (l *Loader) Poll() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.results) == 0 {
		return nil
	}
	out := l.results
	l.results = nil
	return out
}

// Wait blocks until every requested load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}
