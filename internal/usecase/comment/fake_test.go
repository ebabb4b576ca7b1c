package comment_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Guyuepp/layers-blog/domain"
)

// memoryRepo keeps comment documents in a map, copying on the way in and out
// so tests can't reach into stored state.
type memoryRepo struct {
	mu       sync.Mutex
	comments map[string]domain.Comment
	order    []string
	err      error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{comments: make(map[string]domain.Comment)}
}

func clone(c domain.Comment) domain.Comment {
	c.Replies = append([]domain.Reply{}, c.Replies...)
	return c
}

func (m *memoryRepo) Store(_ context.Context, c *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.comments[c.ID] = clone(*c)
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Comment{}, m.err
	}
	c, ok := m.comments[id]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	return clone(c), nil
}

// newestFirst returns the stored comments in reverse insertion order.
func (m *memoryRepo) newestFirst(keep func(domain.Comment) bool) []domain.Comment {
	res := make([]domain.Comment, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		c, ok := m.comments[m.order[i]]
		if ok && keep(c) {
			res = append(res, clone(c))
		}
	}
	return res
}

func (m *memoryRepo) FetchByPost(_ context.Context, postSlug string) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.newestFirst(func(c domain.Comment) bool { return c.PostSlug == postSlug }), nil
}

func (m *memoryRepo) FetchRecent(_ context.Context, limit int64) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	res := m.newestFirst(func(domain.Comment) bool { return true })
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *memoryRepo) FetchAll(_ context.Context) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	res := make([]domain.Comment, 0, len(m.comments))
	for _, id := range m.order {
		if c, ok := m.comments[id]; ok {
			res = append(res, clone(c))
		}
	}
	return res, nil
}

func (m *memoryRepo) Mutate(_ context.Context, id string, fn func(*domain.Comment) error) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Comment{}, m.err
	}
	c, ok := m.comments[id]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	c = clone(c)
	if err := fn(&c); err != nil {
		return domain.Comment{}, err
	}
	m.comments[id] = clone(c)
	return c, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type fakePosts struct {
	authors map[string]string
	err     error
}

func (f fakePosts) GetAuthorDisplayName(_ context.Context, slug string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	name, ok := f.authors[slug]
	if !ok {
		return "", domain.ErrNotFound
	}
	return name, nil
}

func (f fakePosts) Exists(_ context.Context, slug string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.authors[slug]
	return ok, nil
}

func (f fakePosts) FetchSlugs(context.Context, int64, int64) ([]string, int64, error) {
	return nil, 0, errors.New("not used")
}

// fakeBloom answers from a set; keys outside it are reported absent unless
// everything is set. Add writes into keys when it is non-nil.
type fakeBloom struct {
	keys       map[string]bool
	everything bool
	err        error
}

func (f fakeBloom) Add(_ context.Context, key string) error {
	if f.keys != nil {
		f.keys[key] = true
	}
	return nil
}

func (f fakeBloom) BulkAdd(context.Context, []string) error { return nil }
func (f fakeBloom) Exists(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.everything || f.keys[key], nil
}
