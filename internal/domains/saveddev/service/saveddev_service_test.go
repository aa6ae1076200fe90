package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio-backend/internal/domains/saveddev/model"
	usermodel "devfolio-backend/internal/domains/user/model"
	userrepo "devfolio-backend/internal/domains/user/repository"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*usermodel.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *usermodel.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*usermodel.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*usermodel.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *usermodel.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ListDevelopers(_ context.Context, _ string) ([]*userrepo.DeveloperRow, error) {
	return nil, nil
}

type fakeSavedDevRepo struct {
	saved map[string]*model.SavedDeveloper
}

func pairKey(recruiterID, developerID uuid.UUID) string {
	return fmt.Sprintf("%s|%s", recruiterID, developerID)
}

func (r *fakeSavedDevRepo) Create(_ context.Context, saved *model.SavedDeveloper) error {
	key := pairKey(saved.RecruiterID, saved.DeveloperID)
	if _, ok := r.saved[key]; ok {
		return model.NewAlreadySaved()
	}
	saved.CreatedAt = time.Now()
	r.saved[key] = saved
	return nil
}

func (r *fakeSavedDevRepo) Delete(_ context.Context, recruiterID, developerID uuid.UUID) (bool, error) {
	key := pairKey(recruiterID, developerID)
	if _, ok := r.saved[key]; !ok {
		return false, nil
	}
	delete(r.saved, key)
	return true, nil
}

func (r *fakeSavedDevRepo) FindAllByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]*model.SavedDeveloper, error) {
	var out []*model.SavedDeveloper
	for _, s := range r.saved {
		if s.RecruiterID == recruiterID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSavedDevRepo) Exists(_ context.Context, recruiterID, developerID uuid.UUID) (bool, error) {
	_, ok := r.saved[pairKey(recruiterID, developerID)]
	return ok, nil
}

func newTestService() (SavedDevService, *fakeUserRepo) {
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*usermodel.User)}
	repo := &fakeSavedDevRepo{saved: make(map[string]*model.SavedDeveloper)}
	return NewSavedDevService(repo, userRepo), userRepo
}

func addUser(repo *fakeUserRepo, role usermodel.Role) uuid.UUID {
	id := uuid.New()
	repo.users[id] = &usermodel.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		Username:     id.String()[:8],
		Role:         role,
		PasswordHash: "secret-hash",
	}
	return id
}

func TestSaveEmbedsSanitizedDeveloper(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	developer := addUser(users, usermodel.RoleDeveloper)

	saved, err := svc.Save(context.Background(), recruiter, developer)
	require.NoError(t, err)

	assert.Equal(t, recruiter, saved.RecruiterID)
	assert.Equal(t, developer, saved.DeveloperID)
	require.NotNil(t, saved.Developer)
	assert.Equal(t, developer, saved.Developer.ID)
}

func TestSaveTwiceIsConflict(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	developer := addUser(users, usermodel.RoleDeveloper)

	_, err := svc.Save(context.Background(), recruiter, developer)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), recruiter, developer)

	var sdErr *model.SavedDevError
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, model.CodeAlreadySaved, sdErr.Code)
}

func TestSaveNonDeveloperIsNotFound(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	otherRecruiter := addUser(users, usermodel.RoleRecruiter)

	var sdErr *model.SavedDevError

	_, err := svc.Save(context.Background(), recruiter, otherRecruiter)
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, model.CodeDeveloperNotFound, sdErr.Code)

	_, err = svc.Save(context.Background(), recruiter, uuid.New())
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, model.CodeDeveloperNotFound, sdErr.Code)
}

func TestUnsaveAbsentIsNotFound(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	developer := addUser(users, usermodel.RoleDeveloper)

	err := svc.Unsave(context.Background(), recruiter, developer)

	var sdErr *model.SavedDevError
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, model.CodeNotSaved, sdErr.Code)
}

func TestIsSavedFollowsSaveAndUnsave(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	developer := addUser(users, usermodel.RoleDeveloper)

	isSaved, err := svc.IsSaved(context.Background(), recruiter, developer)
	require.NoError(t, err)
	assert.False(t, isSaved)

	_, err = svc.Save(context.Background(), recruiter, developer)
	require.NoError(t, err)

	isSaved, err = svc.IsSaved(context.Background(), recruiter, developer)
	require.NoError(t, err)
	assert.True(t, isSaved)

	require.NoError(t, svc.Unsave(context.Background(), recruiter, developer))

	isSaved, err = svc.IsSaved(context.Background(), recruiter, developer)
	require.NoError(t, err)
	assert.False(t, isSaved)
}

func TestFindAllByRecruiterScopesToRecruiter(t *testing.T) {
	svc, users := newTestService()
	recruiter := addUser(users, usermodel.RoleRecruiter)
	other := addUser(users, usermodel.RoleRecruiter)
	devA := addUser(users, usermodel.RoleDeveloper)
	devB := addUser(users, usermodel.RoleDeveloper)

	_, err := svc.Save(context.Background(), recruiter, devA)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), other, devB)
	require.NoError(t, err)

	saved, err := svc.FindAllByRecruiter(context.Background(), recruiter)
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, devA, saved[0].DeveloperID)
}
