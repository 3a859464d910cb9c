package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strconv"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"photoshare/internal/model"
)

// Thumbnail returns a scaled JPEG rendition of a stored image, cached on
// disk and keyed by reference and size. The cache entry is regenerated
// when the source file is newer than the cached thumbnail.
func (p *Pipeline) Thumbnail(ref string, size int) (*os.File, os.FileInfo, error) {
	if size <= 0 {
		size = 256
	}

	resolved, err := p.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}

	srcInfo, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, model.ErrPhotoNotFound
		}
		return nil, nil, err
	}

	thumbPath := p.thumbnailPath(ref, size)
	if thumbInfo, statErr := os.Stat(thumbPath); statErr == nil && !thumbInfo.ModTime().Before(srcInfo.ModTime()) {
		if thumbFile, openErr := os.Open(thumbPath); openErr == nil {
			return thumbFile, thumbInfo, nil
		}
	}

	src, err := decodeImage(resolved)
	if err != nil {
		return nil, nil, err
	}

	if err := scaleToJPEG(src, thumbPath, size); err != nil {
		return nil, nil, err
	}

	thumbFile, err := os.Open(thumbPath)
	if err != nil {
		return nil, nil, err
	}

	thumbInfo, err := os.Stat(thumbPath)
	if err != nil {
		_ = thumbFile.Close()
		return nil, nil, err
	}

	return thumbFile, thumbInfo, nil
}

func (p *Pipeline) thumbnailPath(ref string, size int) string {
	sum := sha256.Sum256([]byte(ref + "|" + strconv.Itoa(size)))
	return filepath.Join(p.thumbnailRoot, hex.EncodeToString(sum[:])+".jpg")
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidContentType, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, model.ErrInvalidContentType
	}

	return src, nil
}

func scaleToJPEG(src image.Image, thumbPath string, size int) error {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	scale := float64(size) / float64(maxDim)
	if scale > 1 {
		scale = 1
	}

	targetWidth := int(math.Round(float64(width) * scale))
	targetHeight := int(math.Round(float64(height) * scale))
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	writer, err := os.OpenFile(thumbPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	encodeErr := jpeg.Encode(writer, dst, &jpeg.Options{Quality: 90})
	closeErr := writer.Close()
	if encodeErr != nil {
		return encodeErr
	}

	return closeErr
}
