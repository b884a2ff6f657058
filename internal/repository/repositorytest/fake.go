// Package repositorytest provides an in-memory NewsRepository for tests.
// It honours filters and sorting like the real adapters and is safe for concurrent use.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

// Fake is an in-memory repository.NewsRepository.
type Fake struct {
	mu   sync.Mutex
	docs map[string]*entity.News
	seq  []string // insertion order

	// Err, when set, is returned by every operation.
	Err error
	// UpdateErr, when set, is returned by UpdateByID only.
	UpdateErr error
	// DeleteErrs maps ids to errors returned by DeleteByID.
	DeleteErrs map[string]error

	DeleteCalls int
}

var _ repository.NewsRepository = (*Fake)(nil)

// NewFake returns a Fake seeded with the given articles. Articles without an id get one.
func NewFake(seed ...*entity.News) *Fake {
	f := &Fake{docs: make(map[string]*entity.News)}
	for _, n := range seed {
		cp := *n
		if cp.ID == "" {
			cp.ID = entity.NewID()
		}
		cp.Date = entity.StorageTime(cp.Date)
		f.docs[cp.ID] = &cp
		f.seq = append(f.seq, cp.ID)
		n.ID = cp.ID
	}
	return f
}

// Len returns the number of stored articles.
func (f *Fake) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// Get returns a copy of the stored article, or nil.
func (f *Fake) Get(id string) *entity.News {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.docs[id]; ok {
		cp := *n
		return &cp
	}
	return nil
}

func (f *Fake) Find(_ context.Context, q repository.NewsQuery) ([]*entity.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	out := make([]*entity.News, 0, len(f.docs))
	needle := strings.ToLower(q.Filter.TitleContains)
	for _, id := range f.seq {
		n, ok := f.docs[id]
		if !ok {
			continue
		}
		if q.Filter.From != nil && n.Date.Before(*q.Filter.From) {
			continue
		}
		if q.Filter.To != nil && !n.Date.Before(*q.Filter.To) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(n.Title), needle) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], q.Sort.Field)
		if c == 0 {
			return out[i].ID < out[j].ID
		}
		if q.Sort.Descending {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

func compare(a, b *entity.News, field repository.SortField) int {
	switch field {
	case repository.SortByID:
		return strings.Compare(a.ID, b.ID)
	case repository.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case repository.SortByDescription:
		return strings.Compare(a.Description, b.Description)
	case repository.SortByText:
		return strings.Compare(a.Text, b.Text)
	case repository.SortByDate:
		return a.Date.Compare(b.Date)
	}
	return 0
}

func (f *Fake) FindByID(_ context.Context, id string) (*entity.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if n, ok := f.docs[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (f *Fake) Create(_ context.Context, n *entity.News) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	n.ID = entity.NewID()
	n.Date = entity.StorageTime(n.Date)
	cp := *n
	f.docs[cp.ID] = &cp
	f.seq = append(f.seq, cp.ID)
	return nil
}

func (f *Fake) UpdateByID(_ context.Context, id string, patch entity.NewsPatch) (*entity.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	n, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Text != nil {
		n.Text = *patch.Text
	}
	if patch.Date != nil {
		n.Date = entity.StorageTime(*patch.Date)
	}
	cp := *n
	return &cp, nil
}

func (f *Fake) DeleteByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.Err != nil {
		return false, f.Err
	}
	if err := f.DeleteErrs[id]; err != nil {
		return false, err
	}
	if _, ok := f.docs[id]; !ok {
		return false, nil
	}
	delete(f.docs, id)
	return true, nil
}

func (f *Fake) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	return int64(len(f.docs)), nil
}

func (f *Fake) Ping(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Err
}
