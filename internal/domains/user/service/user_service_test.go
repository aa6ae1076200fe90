package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio-backend/internal/domains/user/model"
)

type fakeAvatarStore struct{}

func (fakeAvatarStore) UploadImage(_ context.Context, prefix string, _ []byte, _ string) (string, error) {
	return fmt.Sprintf("http://storage.local/%s/avatar.png", prefix), nil
}

type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (noopCache) Delete(_ context.Context, _ ...string) error     { return nil }
func (noopCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (noopCache) Ping(_ context.Context) error                    { return nil }

func newUserService(repo *fakeUserRepo) UserService {
	return NewUserService(repo, fakeAvatarStore{}, noopCache{})
}

func seedDeveloper(repo *fakeUserRepo) *model.User {
	user := &model.User{
		ID:       uuid.New(),
		Email:    "dev@example.com",
		Username: "devuser",
		FullName: "Dev User",
		Role:     model.RoleDeveloper,
	}
	repo.users[user.ID] = user
	return user
}

func TestUpdateProfileIsPartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	user := seedDeveloper(repo)

	bio := "I build things"
	profile, err := svc.UpdateProfile(context.Background(), user.ID, &model.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	require.NotNil(t, profile.Bio)
	assert.Equal(t, "I build things", *profile.Bio)
	assert.Equal(t, "Dev User", profile.FullName)
}

func TestChangingWorkEmailResetsVerification(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	user := seedDeveloper(repo)

	work := "dev@corp.example.com"
	code := "123456"
	expiry := time.Now().Add(10 * time.Minute)
	user.WorkEmail = &work
	user.IsWorkEmailVerified = true
	user.WorkEmailVerificationCode = &code
	user.WorkEmailVerificationExp = &expiry

	newWork := "dev@other.example.com"
	profile, err := svc.UpdateProfile(context.Background(), user.ID, &model.UpdateProfileRequest{WorkEmail: &newWork})
	require.NoError(t, err)

	assert.False(t, profile.IsWorkEmailVerified)
	stored := repo.users[user.ID]
	assert.Nil(t, stored.WorkEmailVerificationCode)
	assert.Nil(t, stored.WorkEmailVerificationExp)
}

func TestSendWorkEmailCodeRequiresWorkEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	user := seedDeveloper(repo)

	err := svc.SendWorkEmailCode(context.Background(), user.ID)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.CodeNoWorkEmail, userErr.Code)
}

func TestWorkEmailVerificationFlow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	user := seedDeveloper(repo)

	work := "dev@corp.example.com"
	repo.users[user.ID].WorkEmail = &work

	require.NoError(t, svc.SendWorkEmailCode(context.Background(), user.ID))

	code := *repo.users[user.ID].WorkEmailVerificationCode
	profile, err := svc.VerifyWorkEmail(context.Background(), user.ID, code)
	require.NoError(t, err)

	assert.True(t, profile.IsWorkEmailVerified)
	assert.Nil(t, repo.users[user.ID].WorkEmailVerificationCode)
}

func TestUploadAvatarSetsURL(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	user := seedDeveloper(repo)

	profile, err := svc.UploadAvatar(context.Background(), user.ID, []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	require.NotNil(t, profile.AvatarURL)
	assert.Contains(t, *profile.AvatarURL, user.ID.String())
}

func TestGetPublicProfileUnknownUsername(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.GetPublicProfile(context.Background(), "ghost")

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.CodeUserNotFound, userErr.Code)
}

func TestListDevelopersReturnsListings(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	dev := seedDeveloper(repo)
	dev.IsEmailVerified = true

	listings, err := svc.ListDevelopers(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, listings, 1)
	assert.Equal(t, "devuser", listings[0].Username)
}
