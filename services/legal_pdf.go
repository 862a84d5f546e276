package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// LegalPDF is a rendered legal page
type LegalPDF struct {
	Key  string
	Hash string // content hash of the source HTML, usable as an ETag
	Data []byte
	// Cached is true when the PDF came from storage instead of a render
	Cached bool
}

// LegalPDFService renders legal pages to PDF once per distinct content and
// keeps the result in storage. The storage key embeds a hash of the source
// HTML, so a content change produces a new file and old ones are never served.
type LegalPDFService struct {
	storage  StorageProvider
	renderer PDFRenderer
	options  PDFOptions
	group    singleflight.Group

	mu      sync.Mutex
	current map[string]string // name+lang -> key of the latest render
}

// NewLegalPDFService creates the service
func NewLegalPDFService(storage StorageProvider, renderer PDFRenderer) *LegalPDFService {
	return &LegalPDFService{
		storage:  storage,
		renderer: renderer,
		options:  DefaultPDFOptions(),
		current:  make(map[string]string),
	}
}

// ContentHash returns the hex blake2b-256 digest of content
func ContentHash(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// LegalPDFKey is the storage key of a document name + language + html hash
func LegalPDFKey(name, lang, hash string) string {
	return fmt.Sprintf("legal/%s-%s-%s.pdf", name, lang, hash[:16])
}

// Get returns the PDF of htmlDoc, rendering and storing it on a miss.
// Concurrent requests for the same content share one render.
func (s *LegalPDFService) Get(ctx context.Context, name, lang, htmlDoc string) (*LegalPDF, error) {
	hash := ContentHash(htmlDoc)
	key := LegalPDFKey(name, lang, hash)

	if data, err := s.load(ctx, key); err == nil {
		return &LegalPDF{Key: key, Hash: hash, Data: data, Cached: true}, nil
	} else if !errors.Is(err, ErrObjectNotFound) {
		log.Printf("[WARNING] Failed to read cached PDF %s: %v", key, err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		data, err := s.renderer.Render(context.WithoutCancel(ctx), htmlDoc, s.options)
		if err != nil {
			return nil, err
		}
		if _, err := s.storage.UploadReader(context.WithoutCancel(ctx), bytes.NewReader(data), key, "application/pdf", int64(len(data))); err != nil {
			// the render is still good, serve it uncached
			log.Printf("[WARNING] Failed to store PDF %s: %v", key, err)
		} else {
			log.Printf("[INFO] Rendered %s (%d bytes, %s storage)", key, len(data), s.storage.Name())
			s.replace(context.WithoutCancel(ctx), name+"-"+lang, key)
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return &LegalPDF{Key: key, Hash: hash, Data: v.([]byte)}, nil
}

// replace records key as the latest render of doc and deletes the render it
// supersedes, if this process made one.
func (s *LegalPDFService) replace(ctx context.Context, doc, key string) {
	s.mu.Lock()
	previous := s.current[doc]
	s.current[doc] = key
	s.mu.Unlock()

	if previous == "" || previous == key {
		return
	}
	if err := s.storage.Delete(ctx, previous); err != nil {
		log.Printf("[WARNING] Failed to delete superseded PDF %s: %v", previous, err)
	}
}

func (s *LegalPDFService) load(ctx context.Context, key string) ([]byte, error) {
	reader, _, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}
