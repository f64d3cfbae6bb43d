//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"tinygo.org/x/tinyfs"
)

const (
	hostFlashDefaultPath      = "dotmatrix.flash"
	hostFlashDefaultSizeBytes = 256 * 1024
	hostFlashEraseBlockBytes  = 4096
	hostFlashWriteBlockBytes  = 256

	// StorePathEnv names the host flash image file.
	StorePathEnv = "DOTMATRIX_STORE_PATH"
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// hostFlash is a file-backed NOR flash with erase-before-write semantics.
type hostFlash struct {
	mu      sync.Mutex
	f       *os.File
	size    int64
	scratch [hostFlashEraseBlockBytes]byte
}

var _ tinyfs.BlockDevice = (*hostFlash)(nil)

func hostFlashPath() string {
	if path := os.Getenv(StorePathEnv); path != "" {
		return path
	}
	return hostFlashDefaultPath
}

// FlashImage is a flash image file used as a block device.
type FlashImage interface {
	tinyfs.BlockDevice
	Close() error
}

// OpenFlashImage opens or creates the flash image at path. A new image is
// size bytes of erased flash (0 selects the default size); an existing image
// keeps its size.
func OpenFlashImage(path string, size int64) (FlashImage, error) {
	f, err := openHostFlash(path, size)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func openHostFlash(path string, size int64) (*hostFlash, error) {
	if size <= 0 {
		size = hostFlashDefaultSizeBytes
	}
	if size%hostFlashEraseBlockBytes != 0 {
		return nil, fmt.Errorf("flash image size %d not a multiple of %d", size, hostFlashEraseBlockBytes)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash image %q: %w", path, err)
	}

	hf := &hostFlash{f: f, size: size}
	for i := range hf.scratch {
		hf.scratch[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash image %q: %w", path, err)
	}
	if st.Size() > 0 {
		if st.Size()%hostFlashEraseBlockBytes != 0 {
			_ = f.Close()
			return nil, fmt.Errorf("flash image %q: size %d not a multiple of %d", path, st.Size(), hostFlashEraseBlockBytes)
		}
		hf.size = st.Size()
		return hf, nil
	}
	if err := hf.EraseBlocks(0, hf.size/hostFlashEraseBlockBytes); err != nil {
		_ = f.Close()
		return nil, err
	}
	return hf, nil
}

func (f *hostFlash) Close() error { return f.f.Close() }

func (f *hostFlash) Size() int64           { return f.size }
func (f *hostFlash) WriteBlockSize() int64 { return hostFlashWriteBlockBytes }
func (f *hostFlash) EraseBlockSize() int64 { return hostFlashEraseBlockBytes }

func (f *hostFlash) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if maxN := f.size - off; int64(len(p)) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, off)
}

func (f *hostFlash) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	if maxN := f.size - off; int64(len(p)) > maxN {
		p = p[:maxN]
	}

	prev := make([]byte, len(p))
	if _, err := f.f.ReadAt(prev, off); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if prev[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.f.WriteAt(p, off)
}

func (f *hostFlash) EraseBlocks(start, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 {
		return nil
	}
	if start < 0 || (start+n)*hostFlashEraseBlockBytes > f.size {
		return fmt.Errorf("flash erase blocks %d+%d: %w", start, n, os.ErrInvalid)
	}
	for i := start; i < start+n; i++ {
		if _, err := f.f.WriteAt(f.scratch[:], i*hostFlashEraseBlockBytes); err != nil {
			return fmt.Errorf("flash erase block %d: %w", i, err)
		}
	}
	return nil
}
