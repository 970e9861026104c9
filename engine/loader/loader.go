// Package loader reads viewer assets (shader sources and textures) from an asset directory and
// watches that directory for edits.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
)

var (
	// ErrNotFound is returned when an asset does not exist in the asset directory, or when no asset
	// directory is configured.
	ErrNotFound = errors.New("loader: asset not found")

	// ErrUnsupportedFormat is returned when a texture is not in a recognised image format or has a
	// pixel layout that cannot be expanded to RGBA8.
	ErrUnsupportedFormat = errors.New("loader: unsupported image format")
)

// DefaultMaxTextureSize matches the WebGPU default limit for 2D texture dimensions.
const DefaultMaxTextureSize = 8192

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	dir            string
	logger         *slog.Logger
	flipVertical   bool
	maxTextureSize int
}

// Loader resolves asset names against the asset directory. Names are slash-separated paths relative
// to the directory; names that would escape it are treated as missing.
type Loader interface {
	// Dir returns the asset directory, or "" when none is configured.
	Dir() string

	// ReadFile returns the raw bytes of an asset.
	//
	// Parameters:
	//   - name: the asset name relative to the asset directory
	//
	// Returns:
	//   - []byte: the file contents
	//   - error: an error wrapping ErrNotFound if the asset does not exist
	ReadFile(name string) ([]byte, error)

	// ReadText returns an asset as a string.
	//
	// Parameters:
	//   - name: the asset name relative to the asset directory
	//
	// Returns:
	//   - string: the file contents
	//   - error: an error wrapping ErrNotFound if the asset does not exist
	ReadText(name string) (string, error)

	// ReadTexture reads and decodes an image asset into tightly packed RGBA8 pixels, first row at the top.
	//
	// Parameters:
	//   - name: the asset name relative to the asset directory
	//
	// Returns:
	//   - common.TextureData: the decoded pixels
	//   - error: ErrNotFound or ErrUnsupportedFormat (wrapped), or a decode error
	ReadTexture(name string) (common.TextureData, error)

	// DecodeTexture decodes an in-memory image with the loader's orientation and size settings.
	//
	// Parameters:
	//   - data: the encoded image
	//
	// Returns:
	//   - common.TextureData: the decoded pixels
	//   - error: an error wrapping ErrUnsupportedFormat if the format is not recognised
	DecodeTexture(data []byte) (common.TextureData, error)
}

var _ Loader = &loader{}

// NewLoader creates a Loader over an asset directory. An empty dir is allowed; every read then
// reports ErrNotFound and callers fall back to their built-in assets.
//
// Parameters:
//   - dir: the asset directory
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(dir string, options ...LoaderBuilderOption) Loader {
	l := &loader{
		dir:            dir,
		maxTextureSize: DefaultMaxTextureSize,
	}
	for _, option := range options {
		option(l)
	}
	l.logger = logging.Component(l.logger, "loader")
	return l
}

func (l *loader) Dir() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dir
}

func (l *loader) ReadFile(name string) ([]byte, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	l.logger.Debug("read asset", "name", name, "bytes", len(data))
	return data, nil
}

func (l *loader) ReadText(name string) (string, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *loader) ReadTexture(name string) (common.TextureData, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return common.TextureData{}, err
	}
	tex, err := l.DecodeTexture(data)
	if err != nil {
		return common.TextureData{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return tex, nil
}

func (l *loader) DecodeTexture(data []byte) (common.TextureData, error) {
	l.mu.RLock()
	flip, maxSize := l.flipVertical, l.maxTextureSize
	l.mu.RUnlock()

	img, format, err := decodeImage(bytes.NewReader(data), data)
	if err != nil {
		return common.TextureData{}, err
	}
	img = fitTexture(img, maxSize)
	if flip {
		img = flipVertical(img)
	}

	tex, err := toTextureData(img)
	if err != nil {
		return common.TextureData{}, err
	}
	l.logger.Debug("decoded texture", "format", format, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// resolve maps an asset name onto a path inside the asset directory.
func (l *loader) resolve(name string) (string, error) {
	l.mu.RLock()
	dir := l.dir
	l.mu.RUnlock()

	if dir == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}
