// Package docs remembers the documents uploaded during this run so the user
// can look their ids up again. It never decides whether an id is valid.
package docs

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
)

type Document struct {
	DocID      string
	Filename   string
	UploadedAt time.Time
}

type Registry struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// Remember records docID; uploading the same id again replaces the entry.
func (r *Registry) Remember(docID, filename string) Document {
	doc := Document{DocID: docID, Filename: filename, UploadedAt: r.now()}
	r.cache.Set(docID, doc, cache.NoExpiration)
	return doc
}

func (r *Registry) Lookup(docID string) (Document, bool) {
	v, ok := r.cache.Get(docID)
	if !ok {
		return Document{}, false
	}
	return v.(Document), true
}

// List returns documents oldest first.
func (r *Registry) List() []Document {
	items := r.cache.Items()
	out := make([]Document, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Document))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].DocID < out[j].DocID
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
