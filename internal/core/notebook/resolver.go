package notebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns a notebook reference into a Document.
type Resolver interface {
	Resolve(ctx context.Context, uri string) (*Document, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, uri string) (*Document, error)

func (f ResolverFunc) Resolve(ctx context.Context, uri string) (*Document, error) {
	return f(ctx, uri)
}

// Decoder deserializes notebook bytes into cells.
type Decoder interface {
	Decode(data []byte) ([]*Cell, error)
}

// FileResolver reads notebooks from disk and picks a decoder by extension.
type FileResolver struct {
	decoders map[string]Decoder
}

// NewFileResolver returns a resolver for .ipynb and .md files.
func NewFileResolver() *FileResolver {
	return &FileResolver{
		decoders: map[string]Decoder{
			".ipynb":    IPynbDecoder{},
			".md":       MarkdownDecoder{},
			".markdown": MarkdownDecoder{},
		},
	}
}

// Supports reports whether path has a registered decoder.
func (r *FileResolver) Supports(path string) bool {
	_, ok := r.decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Resolve reads the file at uri and decodes it.
func (r *FileResolver) Resolve(ctx context.Context, uri string) (*Document, error) {
	dec, ok := r.decoders[strings.ToLower(filepath.Ext(uri))]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", uri, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cells, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(uri), err)
	}

	return NewDocument(uri, cells), nil
}
