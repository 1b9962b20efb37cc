package documents

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
)

// MemoryRepository keeps documents in process memory. Stored data is
// round-tripped through JSON so callers see the same value types as with
// PostgreSQL and cannot alias stored maps.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]memoryDoc
	now  func() time.Time
}

type memoryDoc struct {
	collection string
	data       []byte
	updatedAt  time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs: make(map[string]memoryDoc),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) materialize(path string, d memoryDoc) (*models.StoredDocument, error) {
	data, err := decode(d.data)
	if err != nil {
		return nil, err
	}
	return &models.StoredDocument{Path: path, Collection: d.collection, Data: data, UpdatedAt: d.updatedAt}, nil
}

func (r *MemoryRepository) Get(ctx context.Context, path string) (*models.StoredDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.materialize(path, d)
}

func (r *MemoryRepository) Set(ctx context.Context, doc *models.StoredDocument) error {
	data, err := encode(doc.Data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc.UpdatedAt = r.now()
	r.docs[doc.Path] = memoryDoc{collection: doc.Collection, data: data, updatedAt: doc.UpdatedAt}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[path]; !ok {
		return common.ErrorNotFound
	}
	delete(r.docs, path)
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, collection, field string, value any) ([]*models.StoredDocument, error) {
	want, err := encode(value)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.StoredDocument
	for path, d := range r.docs {
		if d.collection != collection {
			continue
		}
		doc, err := r.materialize(path, d)
		if err != nil {
			return nil, err
		}
		v, ok := doc.Data[field]
		if !ok {
			continue
		}
		got, err := encode(v)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(got, want) {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *MemoryRepository) Merge(ctx context.Context, path string, fields models.Document) (*models.StoredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	doc, err := r.materialize(path, d)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc.Data[k] = v
	}
	data, err := encode(doc.Data)
	if err != nil {
		return nil, err
	}
	d.data = data
	d.updatedAt = r.now()
	r.docs[path] = d
	return r.materialize(path, d)
}
