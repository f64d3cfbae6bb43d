package msgstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	// ImagePath is the store image file on a LittleFS volume.
	ImagePath = "/messages.bin"
	tempSuffix = ".tmp"
)

// Volume keeps the store image on a LittleFS filesystem.
type Volume struct {
	fs      *littlefs.LFS
	mounted bool
}

// OpenVolume mounts the LittleFS filesystem on dev. When format is set an
// unmountable device is formatted.
func OpenVolume(dev tinyfs.BlockDevice, format bool) (*Volume, error) {
	lfs := littlefs.New(dev)
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 128,
	})

	if err := lfs.Mount(); err != nil {
		if !format {
			return nil, fmt.Errorf("mount message volume: %w", err)
		}
		if err := lfs.Format(); err != nil {
			return nil, fmt.Errorf("format message volume: %w", err)
		}
		if err := lfs.Mount(); err != nil {
			return nil, fmt.Errorf("mount message volume: %w", err)
		}
	}
	v := &Volume{fs: lfs, mounted: true}
	// A write interrupted before its rename leaves the temp file behind.
	_ = v.fs.Remove(ImagePath + tempSuffix)
	return v, nil
}

// Close unmounts the filesystem.
func (v *Volume) Close() error {
	if !v.mounted {
		return nil
	}
	v.mounted = false
	return v.fs.Unmount()
}

// Load reads the store image.
func (v *Volume) Load() (*Store, error) {
	f, err := v.fs.Open(ImagePath)
	if err != nil {
		if isNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", ImagePath, err)
	}
	defer f.Close()

	var data []byte
	buf := make([]byte, 128)
	for {
		n, err := f.Read(buf)
		data = append(data, buf[:n]...)
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ImagePath, err)
		}
	}
	if _, err := Split(data); err != nil {
		return nil, err
	}
	return &Store{data: data}, nil
}

// Save replaces the store image. The new image is written to a temporary
// file first and renamed into place.
func (v *Volume) Save(s *Store) error {
	tempPath := ImagePath + tempSuffix
	_ = v.fs.Remove(tempPath)

	f, err := v.fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("create %s: %w", tempPath, err)
	}
	if _, err := f.Write(s.data); err != nil {
		_ = f.Close()
		_ = v.fs.Remove(tempPath)
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			_ = f.Close()
			_ = v.fs.Remove(tempPath)
			return fmt.Errorf("sync %s: %w", tempPath, err)
		}
	}
	if err := f.Close(); err != nil {
		_ = v.fs.Remove(tempPath)
		return fmt.Errorf("close %s: %w", tempPath, err)
	}

	// rename replaces the old image in one metadata commit
	if err := v.fs.Rename(tempPath, ImagePath); err != nil {
		_ = v.fs.Remove(tempPath)
		return fmt.Errorf("rename %s: %w", tempPath, err)
	}
	return nil
}

func isNotExist(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	return strings.Contains(err.Error(), "No directory entry")
}
