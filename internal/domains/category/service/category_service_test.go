package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplemarine-backend/internal/domains/category/model"
)

type mockRepo struct {
	categories []*model.Category
	err        error
	calls      int
}

func (m *mockRepo) List(_ context.Context) ([]*model.Category, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.categories)), m.err
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (c *memCache) Ping(_ context.Context) error                    { return nil }

func TestList_RepoFailureDegradesToEmptyList(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	svc := NewCategoryService(repo, newMemCache())

	categories := svc.List(context.Background())

	require.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestList_SecondCallServedFromCache(t *testing.T) {
	repo := &mockRepo{categories: []*model.Category{
		{Name: "Engines", Slug: "engines"},
		{Name: "Electrical", Slug: "electrical"},
	}}
	svc := NewCategoryService(repo, newMemCache())

	first := svc.List(context.Background())
	require.Len(t, first, 2)
	require.Equal(t, 1, repo.calls)

	second := svc.List(context.Background())
	assert.Len(t, second, 2)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "engines", second[0].Slug)
}
