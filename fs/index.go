// Package fs implements regrag.VectorIndex over per-jurisdiction JSON
// embeddings files on the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/carewatch/regrag"
)

// DefaultTopK is the number of results returned when the caller does not
// specify one.
const DefaultTopK = 5

// Ensure Index implements regrag.VectorIndex at compile time.
var _ regrag.VectorIndex = (*Index)(nil)

// Index holds per-jurisdiction chunk partitions loaded lazily from
// <dir>/<jurisdiction>.json. Partitions are immutable after load and a load
// is attempted at most once per jurisdiction per process: a missing file is
// remembered as "absent" rather than retried on every call.
//
// Index is safe for concurrent use.
type Index struct {
	dir      string
	embedder regrag.Embedder

	mu         sync.Mutex
	partitions map[string]*partition
}

// partition is the load-once state for one jurisdiction.
type partition struct {
	once   sync.Once
	chunks []regrag.Chunk
	absent bool
	err    error
}

// NewIndex creates an Index reading embeddings files from dir.
func NewIndex(dir string, embedder regrag.Embedder) *Index {
	return &Index{
		dir:        dir,
		embedder:   embedder,
		partitions: make(map[string]*partition),
	}
}

// LoadPartition reads the embeddings file for a jurisdiction. It no-ops if
// the partition is already loaded and records "absent" (without error) when
// no file exists.
func (idx *Index) LoadPartition(_ context.Context, jurisdiction string) error {
	p := idx.partition(jurisdiction)
	p.load(idx.path(jurisdiction))
	return p.err
}

// Search embeds the query and returns the topK most similar chunks for the
// jurisdiction, ordered by similarity descending with ties broken by
// original chunk order. An absent or empty partition, or an unavailable
// embedding model, yields an empty result set rather than an error; that is
// the defined trigger for the caller's fallback path.
func (idx *Index) Search(ctx context.Context, jurisdiction, query string, topK int) ([]regrag.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	if err := idx.embedder.Initialize(ctx); err != nil {
		if regrag.ErrorCode(err) == regrag.EUNAVAILABLE {
			return nil, nil
		}
		return nil, err
	}

	p := idx.partition(jurisdiction)
	p.load(idx.path(jurisdiction))
	if p.err != nil {
		return nil, p.err
	}
	if p.absent || len(p.chunks) == 0 {
		return nil, nil
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		if regrag.ErrorCode(err) == regrag.EUNAVAILABLE {
			return nil, nil
		}
		return nil, err
	}

	results := make([]regrag.SearchResult, 0, len(p.chunks))
	for i, chunk := range p.chunks {
		sim, err := CosineSimilarity(queryVec, chunk.Embedding)
		if err != nil {
			return nil, regrag.Errorf(regrag.EDIMENSION,
				"chunk %d of %q: %s", i, jurisdiction, regrag.ErrorMessage(err))
		}
		results = append(results, regrag.SearchResult{
			Text:       chunk.Text,
			Metadata:   chunk.Metadata,
			Similarity: sim,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Stats returns chunk count, doc_type histogram, and distinct sources for a
// loaded jurisdiction, or ENOTFOUND for an unloaded or absent one.
func (idx *Index) Stats(jurisdiction string) (*regrag.PartitionStats, error) {
	key := normalizeKey(jurisdiction)

	idx.mu.Lock()
	p, ok := idx.partitions[key]
	idx.mu.Unlock()
	if !ok || p.absent || p.err != nil {
		return nil, regrag.Errorf(regrag.ENOTFOUND, "no partition loaded for %q", jurisdiction)
	}

	stats := &regrag.PartitionStats{
		Jurisdiction: key,
		TotalChunks:  len(p.chunks),
		DocTypes:     make(map[string]int),
	}
	seen := make(map[string]struct{})
	for _, c := range p.chunks {
		stats.DocTypes[c.Metadata.DocType]++
		if _, ok := seen[c.Metadata.Source]; !ok {
			seen[c.Metadata.Source] = struct{}{}
			stats.Sources = append(stats.Sources, c.Metadata.Source)
		}
	}
	return stats, nil
}

// Preload loads every *.json partition in the index directory and returns
// the jurisdictions loaded. A missing or empty directory is not an error.
func (idx *Index) Preload(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(idx.dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var loaded []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		jurisdiction := strings.TrimSuffix(name, ".json")
		if err := idx.LoadPartition(ctx, jurisdiction); err != nil {
			return loaded, err
		}
		loaded = append(loaded, jurisdiction)
	}
	sort.Strings(loaded)
	return loaded, nil
}

// Jurisdictions returns the sorted keys of every loaded, non-absent
// partition.
func (idx *Index) Jurisdictions() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var keys []string
	for key, p := range idx.partitions {
		if !p.absent && p.err == nil && len(p.chunks) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Invalidate forgets the partition state for a jurisdiction so the next
// access reloads it. Used by tests and operational tooling.
func (idx *Index) Invalidate(jurisdiction string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.partitions, normalizeKey(jurisdiction))
}

// partition returns the load-once state for a jurisdiction, creating it on
// first access.
func (idx *Index) partition(jurisdiction string) *partition {
	key := normalizeKey(jurisdiction)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	p, ok := idx.partitions[key]
	if !ok {
		p = &partition{}
		idx.partitions[key] = p
	}
	return p
}

func (idx *Index) path(jurisdiction string) string {
	return filepath.Join(idx.dir, normalizeKey(jurisdiction)+".json")
}

func normalizeKey(jurisdiction string) string {
	return strings.ToLower(strings.TrimSpace(jurisdiction))
}

// load reads and parses the embeddings file exactly once.
func (p *partition) load(path string) {
	p.once.Do(func() {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			p.absent = true
			return
		} else if err != nil {
			p.err = regrag.Errorf(regrag.EINTERNAL, "reading embeddings file %q: %v", path, err)
			return
		}

		var chunks []regrag.Chunk
		if err := json.Unmarshal(data, &chunks); err != nil {
			p.err = regrag.Errorf(regrag.EINVALID, "parsing embeddings file %q: %v", path, err)
			return
		}
		p.chunks = chunks
	})
}
