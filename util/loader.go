// Package util - Image file loading and saving.
package util

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/images"
)

// ImageFile is one decoded corpus entry.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Buffer is the decoded pixel data.
	Buffer *images.Buffer
}

// LoadImageFile decodes a PNG or JPEG file into a buffer.
//
// Arguments:
// - path: Path to the image file.
//
// Returns:
// - *images.Buffer: The decoded pixels.
// - error: Error if opening or decoding fails.
func LoadImageFile(path string) (*images.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return images.FromImage(img), nil
}

// SaveImageFile encodes a buffer to disk by file extension. PNG is
// lossless and keeps fills byte-exact; JPEG is for bulk previews.
//
// Arguments:
// - buf: The pixels to write.
// - path: Destination ending in .png, .jpg, or .jpeg.
//
// Returns:
// - error: Error if creating or encoding fails.
func SaveImageFile(buf *images.Buffer, path string) error {
	if buf == nil || len(buf.Pix) == 0 {
		return errors.New("buffer is empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, buf.ToImage())
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, buf.ToImage(), &jpeg.Options{Quality: 95})
	default:
		return errors.Errorf("unsupported image extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return nil
}

// LoadDirectoryImageFiles decodes every image in a directory, sorted by
// path so corpus order is stable across runs.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: Decoded entries in name order.
// - error: Error if reading the directory or decoding a file fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var entries []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(file.Name())) {
		case ".jpg", ".jpeg", ".png":
			path := filepath.Join(dir, file.Name())
			buf, err := LoadImageFile(path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ImageFile{Path: path, Buffer: buf})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}
