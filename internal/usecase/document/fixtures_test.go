package document

import (
	"context"
	"sync"
	"time"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	sgferrors "sgfkit/internal/errors"
)

// memoryStore - DocumentStore в памяти.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]document.Record
	texts   map[string]string
	saves   int

	// loadDelay растягивает чтение, чтобы параллельные правки пересекались.
	loadDelay time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records: make(map[string]document.Record),
		texts:   make(map[string]string),
	}
}

func (s *memoryStore) SaveDocument(_ context.Context, record document.Record, sgfText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	s.texts[record.ID] = sgfText
	s.saves++
	return nil
}

func (s *memoryStore) LoadDocument(_ context.Context, id string) (document.Record, error) {
	if s.loadDelay > 0 {
		time.Sleep(s.loadDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return document.Record{}, sgferrors.ErrDocumentNotFound
	}
	return record, nil
}

func (s *memoryStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return sgferrors.ErrDocumentNotFound
	}
	delete(s.records, id)
	delete(s.texts, id)
	return nil
}

func (s *memoryStore) SaveSGFText(_ context.Context, id string, sgfText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[id] = sgfText
	return nil
}

func (s *memoryStore) LoadSGFText(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.texts[id]
	if !ok {
		return "", sgferrors.ErrCacheMiss
	}
	return text, nil
}

func (s *memoryStore) dropText(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.texts, id)
}

func prop(id string, values ...string) rawsgf.Property {
	return rawsgf.Property{ID: id, Values: values}
}

func node(properties ...rawsgf.Property) rawsgf.Node {
	return rawsgf.Node{Properties: properties}
}

// sampleCollection: (;GM[1]SZ[19]PB[Shusaku]PW[Gennan];B[qd];W[dc](;B[pq])(;B[oc]C[variation]))
func sampleCollection() *rawsgf.Collection {
	return &rawsgf.Collection{GameTrees: []*rawsgf.GameTree{{
		Nodes: []rawsgf.Node{
			node(prop("GM", "1"), prop("SZ", "19"), prop("PB", "Shusaku"), prop("PW", "Gennan")),
			node(prop("B", "qd")),
			node(prop("W", "dc")),
		},
		Children: []*rawsgf.GameTree{
			{Nodes: []rawsgf.Node{node(prop("B", "pq"))}},
			{Nodes: []rawsgf.Node{node(prop("B", "oc"), prop("C", "variation"))}},
		},
	}}}
}

const sampleSGF = "(;GM[1]SZ[19]PB[Shusaku]PW[Gennan];B[qd];W[dc](;B[pq])(;B[oc]C[variation]))"
