package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio-backend/internal/domains/skill/model"
)

type fakeSkillRepo struct {
	skills    []*model.Skill
	listCalls int
}

func (r *fakeSkillRepo) List(_ context.Context, search, category string) ([]*model.Skill, error) {
	r.listCalls++
	return r.skills, nil
}

func (r *fakeSkillRepo) FindByIDs(_ context.Context, ids []int) ([]*model.Skill, error) {
	var out []*model.Skill
	for _, id := range ids {
		for _, s := range r.skills {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// memoryCache mirrors the redis cache's JSON round-trip semantics.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, _ string) error {
	c.entries = make(map[string][]byte)
	return nil
}

func (c *memoryCache) Ping(_ context.Context) error { return nil }

func catalog() []*model.Skill {
	category := "backend"
	return []*model.Skill{
		{ID: 1, Name: "Go", Slug: "go", Category: &category},
		{ID: 2, Name: "PostgreSQL", Slug: "postgresql", Category: &category},
	}
}

func TestListIsCached(t *testing.T) {
	repo := &fakeSkillRepo{skills: catalog()}
	svc := NewSkillService(repo, newMemoryCache())

	first, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, second, 2)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first[0].Name, second[0].Name)
}

func TestListCacheKeyIncludesFilters(t *testing.T) {
	repo := &fakeSkillRepo{skills: catalog()}
	svc := NewSkillService(repo, newMemoryCache())

	_, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "go", "")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
}

func TestFindByIDsDropsUnknownIDs(t *testing.T) {
	repo := &fakeSkillRepo{skills: catalog()}
	svc := NewSkillService(repo, newMemoryCache())

	skills, err := svc.FindByIDs(context.Background(), []int{2, 99})
	require.NoError(t, err)

	require.Len(t, skills, 1)
	assert.Equal(t, "PostgreSQL", skills[0].Name)
}
