// Package store keeps feedback records in process memory.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("feedback not found")

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Category  string
	Sentiment models.Sentiment
	MinRating int
	MaxRating int
	StartDate time.Time
	EndDate   time.Time
	Search    string
}

func (f Filter) matches(fb models.Feedback) bool {
	if f.Category != "" && fb.Category != f.Category {
		return false
	}
	if f.Sentiment != "" && fb.Sentiment != f.Sentiment {
		return false
	}
	if f.MinRating > 0 && fb.Rating < f.MinRating {
		return false
	}
	if f.MaxRating > 0 && fb.Rating > f.MaxRating {
		return false
	}
	if !f.StartDate.IsZero() && fb.CreatedAt.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && fb.CreatedAt.After(f.EndDate) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(fb.ProductName), q) &&
			!strings.Contains(strings.ToLower(fb.Feedback), q) {
			return false
		}
	}
	return true
}

// Store is the feedback repository used by the service layer.
type Store interface {
	Save(ctx context.Context, fb models.Feedback) error
	Get(ctx context.Context, id string) (models.Feedback, error)
	List(ctx context.Context, f Filter) ([]models.Feedback, error)
	Count(ctx context.Context) int
}

// Memory is an unbounded map from id to record that lives as long as the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string]models.Feedback
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.Feedback)}
}

func (m *Memory) Save(_ context.Context, fb models.Feedback) error {
	if fb.ID == "" {
		return errors.New("feedback id is required")
	}
	m.mu.Lock()
	m.records[fb.ID] = cloneFeedback(fb)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (models.Feedback, error) {
	m.mu.RLock()
	fb, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return models.Feedback{}, ErrNotFound
	}
	return cloneFeedback(fb), nil
}

// List returns matching records, newest first.
func (m *Memory) List(_ context.Context, f Filter) ([]models.Feedback, error) {
	m.mu.RLock()
	out := make([]models.Feedback, 0, len(m.records))
	for _, fb := range m.records {
		if f.matches(fb) {
			out = append(out, cloneFeedback(fb))
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Count(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// cloneFeedback copies slice fields so callers cannot mutate stored records.
func cloneFeedback(fb models.Feedback) models.Feedback {
	fb.Keywords = append([]string(nil), fb.Keywords...)
	fb.Tags = append([]string(nil), fb.Tags...)
	return fb
}
