package cache

import (
	"encoding/json"
	"time"

	"github.com/yash-makwana/ipo/internal/model"
)

// ReportStore caches per-document evaluation reports, keyed by document
// content and ontology fingerprint
type ReportStore struct {
	cache Cache
	ttl   time.Duration
}

// NewReportStore wraps a cache as a typed report store
func NewReportStore(c Cache, ttl time.Duration) *ReportStore {
	return &ReportStore{cache: c, ttl: ttl}
}

// Get returns the cached report for the document content, if any. A corrupt
// entry is treated as a miss.
func (s *ReportStore) Get(content []byte, fingerprint string) (*model.Report, bool) {
	data, found := s.cache.Get(Key(content, fingerprint))
	if !found {
		return nil, false
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

// Put stores a report for the document content
func (s *ReportStore) Put(content []byte, fingerprint string, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.cache.Set(Key(content, fingerprint), data, s.ttl)
}
