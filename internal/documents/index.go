package documents

import "sync"

// Index is the in-memory document store. It is safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
}

// NewIndex constructs an empty Index.
func NewIndex() *Index {
	return &Index{
		docs: make(map[string]Document),
	}
}

// Insert stores doc under doc.ID. An existing entry is replaced in place and
// keeps its position in List and Search order.
func (i *Index) Insert(doc Document) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, exists := i.docs[doc.ID]; !exists {
		i.order = append(i.order, doc.ID)
	}
	i.docs[doc.ID] = doc
}

// Delete removes id and reports whether anything was removed.
func (i *Index) Delete(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.docs[id]; !ok {
		return false
	}
	delete(i.docs, id)
	for pos, existing := range i.order {
		if existing == id {
			i.order = append(i.order[:pos], i.order[pos+1:]...)
			break
		}
	}
	return true
}

// Get returns the document stored under id.
func (i *Index) Get(id string) (Document, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	doc, ok := i.docs[id]
	return doc, ok
}

// List returns summaries in insertion order.
func (i *Index) List() []Summary {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]Summary, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.docs[id].Summary())
	}
	return out
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}

// snapshot returns the search candidates: the scoped document when it
// exists, otherwise every document in insertion order.
func (i *Index) snapshot(scopeID string) []Document {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if scopeID != "" {
		if doc, ok := i.docs[scopeID]; ok {
			return []Document{doc}
		}
	}
	out := make([]Document, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.docs[id])
	}
	return out
}
