package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shelfworks/bookintake/internal/core/domain"
)

// storeFake is an in-memory ObjectStore that records every write in order.
type storeFake struct {
	mu      sync.Mutex
	objects map[string][]byte
	writes  []string

	existsErr   error
	listErr     error
	downloadErr error
	uploadErr   map[string]error
	copyErr     error
	deleteErr   error
}

func newStoreFake() *storeFake {
	return &storeFake{
		objects:   map[string][]byte{},
		uploadErr: map[string]error{},
	}
}

func (s *storeFake) put(key string, body []byte) {
	s.objects[key] = body
}

func (s *storeFake) Exists(_ context.Context, key string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.objects[key]
	return ok, nil
}

func (s *storeFake) List(_ context.Context, prefix string) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *storeFake) Download(_ context.Context, key string) (io.ReadCloser, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	body, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *storeFake) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	if err := s.uploadErr[key]; err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.writes = append(s.writes, "upload "+key)
	return nil
}

func (s *storeFake) Copy(_ context.Context, srcKey, dstKey string) error {
	if s.copyErr != nil {
		return s.copyErr
	}
	body, ok := s.objects[srcKey]
	if !ok {
		return fmt.Errorf("copy source missing: %s", srcKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[dstKey] = body
	s.writes = append(s.writes, "copy "+srcKey+" -> "+dstKey)
	return nil
}

func (s *storeFake) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.writes = append(s.writes, "delete "+key)
	return nil
}

type extractorFake struct {
	format domain.Format
	result domain.ExtractionResult
	err    error
	calls  int
}

func (f *extractorFake) Format() domain.Format { return f.format }

func (f *extractorFake) Extract(context.Context, string, string, string) (domain.ExtractionResult, error) {
	f.calls++
	if f.err != nil {
		return domain.ExtractionResult{}, f.err
	}
	return f.result, nil
}

type backendFake struct {
	name  string
	meta  domain.Metadata
	err   error
	calls int
}

func (f *backendFake) Name() string { return f.name }

func (f *backendFake) Classify(context.Context, string) (domain.Metadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}
