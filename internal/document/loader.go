// Package document turns resume files into plain text for the analysis core.
package document

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Format names a supported document kind.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
	FormatHTML Format = "html"
)

type decodeFunc func(data []byte) (string, error)

var formats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatText,
	".md":   FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

var decoders = map[Format]decodeFunc{
	FormatPDF:  decodePDF,
	FormatDOCX: decodeDOCX,
	FormatText: decodeText,
	FormatHTML: decodeHTML,
}

// FormatFor resolves the format from the lowercase file extension.
func FormatFor(path string) (Format, bool) {
	f, ok := formats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// SupportedExtensions returns the recognized extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Loader resolves a file path to plain text.
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// FileLoader reads documents from the local filesystem.
type FileLoader struct {
	cache  *Cache
	logger *zap.Logger
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithCache enables the extracted-text cache.
func WithCache(c *Cache) Option { return func(l *FileLoader) { l.cache = c } }

func WithLogger(logger *zap.Logger) Option { return func(l *FileLoader) { l.logger = logger } }

func NewFileLoader(opts ...Option) *FileLoader {
	l := &FileLoader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Load reads path and returns its text. Every failure is a *LoadError.
func (l *FileLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	format, ok := FormatFor(path)
	if !ok {
		return "", &LoadError{Path: path, Format: strings.TrimPrefix(filepath.Ext(path), "."), Err: ErrUnsupportedFormat}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &LoadError{Path: path, Format: string(format), Err: ErrNotFound}
		}
		return "", &LoadError{Path: path, Format: string(format), Err: unreadable(err)}
	}

	log := l.logger.With(zap.String("document_path", path), zap.String("format", string(format)))

	key := CacheKey(data, filepath.Ext(path))
	if text, hit, err := l.cache.Get(key); err != nil {
		log.Warn("reading text cache failed", zap.Error(err))
	} else if hit {
		log.Debug("text cache hit", zap.String("key", key))
		return text, nil
	}

	text, err := decoders[format](data)
	if err != nil {
		return "", &LoadError{Path: path, Format: string(format), Err: unreadable(err)}
	}

	log.Debug("document decoded", zap.Int("bytes", len(data)), zap.Int("text_length", len(text)))

	if err := l.cache.Put(key, format, text); err != nil {
		log.Warn("writing text cache failed", zap.Error(err))
	}

	return text, nil
}
