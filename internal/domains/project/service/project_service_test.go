package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio-backend/internal/domains/project/model"
	"devfolio-backend/internal/domains/project/repository"
	skillmodel "devfolio-backend/internal/domains/skill/model"
	usermodel "devfolio-backend/internal/domains/user/model"
)

// fakeProjectRepo is an in-memory ProjectRepository. takenSlugs simulates
// rows inserted by a concurrent writer: invisible to the existence probe but
// triggering the unique constraint on insert.
type fakeProjectRepo struct {
	projects   map[uuid.UUID]*model.Project
	images     map[uuid.UUID]*model.ProjectImage
	tech       map[uuid.UUID][]int
	takenSlugs map[string]bool
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:   make(map[uuid.UUID]*model.Project),
		images:     make(map[uuid.UUID]*model.ProjectImage),
		tech:       make(map[uuid.UUID][]int),
		takenSlugs: make(map[string]bool),
	}
}

func slugKey(userID uuid.UUID, slug string) string {
	return fmt.Sprintf("%s|%s", userID, slug)
}

func (r *fakeProjectRepo) Create(_ context.Context, project *model.Project, techStackIDs []int) error {
	key := slugKey(project.UserID, project.Slug)
	if r.takenSlugs[key] {
		return repository.ErrDuplicateSlug
	}
	for _, p := range r.projects {
		if p.UserID == project.UserID && p.Slug == project.Slug {
			return repository.ErrDuplicateSlug
		}
	}

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	stored := *project
	r.projects[project.ID] = &stored
	r.tech[project.ID] = append([]int(nil), techStackIDs...)
	return nil
}

func (r *fakeProjectRepo) ExistsByUserAndSlug(_ context.Context, userID uuid.UUID, slug string) (bool, error) {
	for _, p := range r.projects {
		if p.UserID == userID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	copied.Images = nil
	for _, img := range r.images {
		if img.ProjectID == id {
			imgCopy := *img
			copied.Images = append(copied.Images, &imgCopy)
		}
	}
	return &copied, nil
}

func (r *fakeProjectRepo) FindAllByOwner(_ context.Context, userID uuid.UUID, status string) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range r.projects {
		if p.UserID == userID && (status == "" || string(p.Status) == status) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindPublicBySlug(_ context.Context, username, slug string) (*model.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug && p.Status == model.StatusPublished &&
			p.Owner != nil && p.Owner.Username == username {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *model.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return model.NewProjectNotFound()
	}
	project.UpdatedAt = time.Now()
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) ReplaceTechStack(_ context.Context, projectID uuid.UUID, skillIDs []int) error {
	r.tech[projectID] = append([]int(nil), skillIDs...)
	return nil
}

func (r *fakeProjectRepo) Remove(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	delete(r.tech, id)
	for imgID, img := range r.images {
		if img.ProjectID == id {
			delete(r.images, imgID)
		}
	}
	return nil
}

func (r *fakeProjectRepo) AddImage(_ context.Context, image *model.ProjectImage) error {
	image.CreatedAt = time.Now()
	stored := *image
	r.images[image.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) FindImage(_ context.Context, projectID, imageID uuid.UUID) (*model.ProjectImage, error) {
	img, ok := r.images[imageID]
	if !ok || img.ProjectID != projectID {
		return nil, nil
	}
	copied := *img
	return &copied, nil
}

func (r *fakeProjectRepo) RemoveImage(_ context.Context, imageID uuid.UUID) error {
	delete(r.images, imageID)
	return nil
}

// fakeSkillService resolves against a fixed catalog, dropping unknown ids.
type fakeSkillService struct {
	catalog map[int]*skillmodel.Skill
}

func (s *fakeSkillService) List(_ context.Context, _, _ string) ([]*skillmodel.Skill, error) {
	var out []*skillmodel.Skill
	for _, skill := range s.catalog {
		out = append(out, skill)
	}
	return out, nil
}

func (s *fakeSkillService) FindByIDs(_ context.Context, ids []int) ([]*skillmodel.Skill, error) {
	var out []*skillmodel.Skill
	for _, id := range ids {
		if skill, ok := s.catalog[id]; ok {
			out = append(out, skill)
		}
	}
	return out, nil
}

type fakeImageStore struct {
	deletedPrefixes []string
}

func (s *fakeImageStore) UploadImage(_ context.Context, prefix string, _ []byte, _ string) (string, error) {
	return fmt.Sprintf("http://storage.local/%s/%s.png", prefix, uuid.NewString()), nil
}

func (s *fakeImageStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.deletedPrefixes = append(s.deletedPrefixes, prefix)
	return nil
}

type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (noopCache) Delete(_ context.Context, _ ...string) error     { return nil }
func (noopCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (noopCache) Ping(_ context.Context) error                    { return nil }

func newTestService() (ProjectService, *fakeProjectRepo, *fakeImageStore) {
	repo := newFakeProjectRepo()
	skills := &fakeSkillService{catalog: map[int]*skillmodel.Skill{
		1: {ID: 1, Name: "Go", Slug: "go"},
		2: {ID: 2, Name: "PostgreSQL", Slug: "postgresql"},
	}}
	store := &fakeImageStore{}
	svc := NewProjectService(repo, skills, store, noopCache{})
	return svc, repo, store
}

func createReq(title string) *model.CreateProjectRequest {
	return &model.CreateProjectRequest{
		Title:       title,
		Description: "a case study",
	}
}

func TestCreateDerivesSlug(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("My Awesome App!!"))
	require.NoError(t, err)

	assert.Equal(t, "my-awesome-app", project.Slug)
	assert.Equal(t, model.StatusDraft, project.Status)
	assert.Nil(t, project.PublishedAt)
	assert.Empty(t, project.Images)
}

func TestCreateAppendsCounterOnCollision(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	first, err := svc.Create(context.Background(), owner, createReq("My Awesome App!!"))
	require.NoError(t, err)
	require.Equal(t, "my-awesome-app", first.Slug)

	second, err := svc.Create(context.Background(), owner, createReq("My Awesome App!!"))
	require.NoError(t, err)
	assert.Equal(t, "my-awesome-app-1", second.Slug)

	third, err := svc.Create(context.Background(), owner, createReq("My Awesome App!!"))
	require.NoError(t, err)
	assert.Equal(t, "my-awesome-app-2", third.Slug)
}

func TestCreateSlugsAreOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.Create(context.Background(), uuid.New(), createReq("Shared Title"))
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), uuid.New(), createReq("Shared Title"))
	require.NoError(t, err)

	assert.Equal(t, first.Slug, second.Slug)
}

func TestCreateRetriesOnInsertCollision(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	// A concurrent writer owns the slug but is invisible to the probe.
	repo.takenSlugs[slugKey(owner, "race-title")] = true

	project, err := svc.Create(context.Background(), owner, createReq("Race Title"))
	require.NoError(t, err)
	assert.Equal(t, "race-title-1", project.Slug)
}

func TestCreateEmptySlugFallsBackToCounter(t *testing.T) {
	svc, _, _ := newTestService()

	project, err := svc.Create(context.Background(), uuid.New(), createReq("!!! ???"))
	require.NoError(t, err)
	assert.Equal(t, "-1", project.Slug)
}

func TestCreateDropsUnknownSkillIDs(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	req := createReq("Stacked")
	req.TechStackIDs = []int{1, 99, 2}

	project, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)

	require.Len(t, project.TechStack, 2)
	assert.ElementsMatch(t, []int{1, 2}, repo.tech[project.ID])
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateProjectRequest{Description: "d"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), &model.CreateProjectRequest{Title: "t"})
	assert.Error(t, err)
}

func TestUpdateDoesNotRegenerateSlug(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Original Title"))
	require.NoError(t, err)

	newTitle := "Completely Different Title"
	updated, err := svc.Update(context.Background(), project.ID, owner, &model.UpdateProjectRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "original-title", updated.Slug)
}

func TestUpdateByNonOwnerIsForbiddenAndDoesNotMutate(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Mine"))
	require.NoError(t, err)

	hijack := "Hijacked"
	_, err = svc.Update(context.Background(), project.ID, uuid.New(), &model.UpdateProjectRequest{Title: &hijack})
	require.Error(t, err)

	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeForbidden, projErr.Code)

	assert.Equal(t, "Mine", repo.projects[project.ID].Title)
}

func TestUpdateMissingProjectIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	title := "x"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &model.UpdateProjectRequest{Title: &title})

	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeProjectNotFound, projErr.Code)
}

func TestUpdateReplacesTechStackWholesale(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	req := createReq("Stacked")
	req.TechStackIDs = []int{1}
	project, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)

	replacement := []int{2, 99}
	updated, err := svc.Update(context.Background(), project.ID, owner, &model.UpdateProjectRequest{TechStackIDs: &replacement})
	require.NoError(t, err)

	require.Len(t, updated.TechStack, 1)
	assert.Equal(t, 2, updated.TechStack[0].ID)
	assert.Equal(t, []int{2}, repo.tech[project.ID])
}

func TestPublishStampsPublishedAt(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Launch"))
	require.NoError(t, err)

	published, err := svc.Publish(context.Background(), project.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	firstStamp := *published.PublishedAt

	// Re-publishing re-stamps rather than short-circuiting.
	time.Sleep(5 * time.Millisecond)
	republished, err := svc.Publish(context.Background(), project.ID, owner)
	require.NoError(t, err)
	assert.True(t, republished.PublishedAt.After(firstStamp))
}

func TestUnpublishKeepsPublishedAt(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Launch"))
	require.NoError(t, err)

	published, err := svc.Publish(context.Background(), project.ID, owner)
	require.NoError(t, err)
	stamp := *published.PublishedAt

	unpublished, err := svc.Unpublish(context.Background(), project.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDraft, unpublished.Status)
	require.NotNil(t, unpublished.PublishedAt)
	assert.Equal(t, stamp, *unpublished.PublishedAt)
}

func TestPublishByNonOwnerIsForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Launch"))
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), project.ID, uuid.New())

	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeForbidden, projErr.Code)
}

func TestPublicLookupCollapsesDraftAndMissingToNotFound(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Case Study"))
	require.NoError(t, err)

	// Attach the owner reference the repository would load.
	stored := repo.projects[project.ID]
	stored.Owner = ownerProfile("jane")

	// Draft: not visible.
	_, err = svc.FindPublicBySlug(context.Background(), "jane", "case-study")
	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeProjectNotFound, projErr.Code)

	// Published: visible under the owner's username only.
	_, err = svc.Publish(context.Background(), project.ID, owner)
	require.NoError(t, err)
	repo.projects[project.ID].Owner = ownerProfile("jane")

	found, err := svc.FindPublicBySlug(context.Background(), "jane", "case-study")
	require.NoError(t, err)
	assert.Equal(t, project.ID, found.ID)

	// Someone else's username: same NotFound as missing.
	_, err = svc.FindPublicBySlug(context.Background(), "john", "case-study")
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeProjectNotFound, projErr.Code)
}

func TestRemoveCascadesImagesAndStorage(t *testing.T) {
	svc, repo, store := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Doomed"))
	require.NoError(t, err)

	_, err = svc.AddImage(context.Background(), project.ID, owner, []byte("img"), "image/png", &model.AddImageRequest{})
	require.NoError(t, err)
	_, err = svc.AddImage(context.Background(), project.ID, owner, []byte("img"), "image/png", &model.AddImageRequest{})
	require.NoError(t, err)
	require.Len(t, repo.images, 2)

	require.NoError(t, svc.Remove(context.Background(), project.ID, owner))

	assert.Empty(t, repo.images)
	assert.NotContains(t, repo.projects, project.ID)
	assert.Contains(t, store.deletedPrefixes, fmt.Sprintf("projects/%s", project.ID))
}

func TestRemoveByNonOwnerIsForbidden(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Mine"))
	require.NoError(t, err)

	err = svc.Remove(context.Background(), project.ID, uuid.New())

	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeForbidden, projErr.Code)
	assert.Contains(t, repo.projects, project.ID)
}

func TestAddImageDefaultsSortOrder(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	project, err := svc.Create(context.Background(), owner, createReq("Gallery"))
	require.NoError(t, err)

	image, err := svc.AddImage(context.Background(), project.ID, owner, []byte("img"), "image/png", &model.AddImageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, image.SortOrder)

	order := 7
	caption := "screenshot"
	second, err := svc.AddImage(context.Background(), project.ID, owner, []byte("img"), "image/png", &model.AddImageRequest{
		Caption:   &caption,
		SortOrder: &order,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, second.SortOrder)
	require.NotNil(t, second.Caption)
	assert.Equal(t, "screenshot", *second.Caption)
}

func TestRemoveImageFromOtherProjectIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	first, err := svc.Create(context.Background(), owner, createReq("First"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), owner, createReq("Second"))
	require.NoError(t, err)

	image, err := svc.AddImage(context.Background(), first.ID, owner, []byte("img"), "image/png", &model.AddImageRequest{})
	require.NoError(t, err)

	// Guessing an image id through the wrong project fails.
	err = svc.RemoveImage(context.Background(), second.ID, image.ID, owner)

	var projErr *model.ProjectError
	require.ErrorAs(t, err, &projErr)
	assert.Equal(t, model.CodeImageNotFound, projErr.Code)

	// Through the right project it works.
	require.NoError(t, svc.RemoveImage(context.Background(), first.ID, image.ID, owner))
}

func ownerProfile(username string) *usermodel.ProfileResponse {
	return &usermodel.ProfileResponse{Username: username}
}
