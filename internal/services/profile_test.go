package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/backend/internal/models"
	"github.com/skillswap/backend/internal/services"
)

func TestProfileService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := services.NewMockProfileReader(ctrl)
	skills := services.NewMockSkillLister(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	svc := services.NewProfileService(profiles, skills, writer)

	userID := uuid.New()

	t.Run("own profile keeps email", func(t *testing.T) {
		profiles.EXPECT().GetProfile(gomock.Any(), userID).Return(&models.Profile{
			User: models.PublicUser{UserID: userID, Email: "me@example.com"},
		}, nil)

		profile, err := svc.Get(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, "me@example.com", profile.User.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		profiles.EXPECT().GetProfile(gomock.Any(), userID).Return(nil, nil)

		profile, err := svc.Get(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, profile)
	})
}

func TestProfileService_GetPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := services.NewMockProfileReader(ctrl)
	skills := services.NewMockSkillLister(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	svc := services.NewProfileService(profiles, skills, writer)

	userID := uuid.New()
	userSkills := []models.SkillDB{{SkillID: uuid.New(), Name: "Guitar", Kind: models.SkillOffered}}

	profiles.EXPECT().GetProfile(gomock.Any(), userID).Return(&models.Profile{
		User: models.PublicUser{UserID: userID, Email: "hidden@example.com"},
	}, nil)
	skills.EXPECT().ListByUser(gomock.Any(), userID).Return(userSkills, nil)

	profile, err := svc.GetPublic(context.Background(), userID)
	assert.NoError(t, err)
	assert.Empty(t, profile.User.Email)
	assert.Equal(t, userSkills, profile.Skills)
}

func TestProfileService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := services.NewMockProfileReader(ctrl)
	skills := services.NewMockSkillLister(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	svc := services.NewProfileService(profiles, skills, writer)

	userID := uuid.New()
	name := "Jane"

	t.Run("successful update", func(t *testing.T) {
		writer.EXPECT().
			Update(gomock.Any(), userID, &name, gomock.Nil()).
			Return(&models.UserDB{UserID: userID, Name: name}, nil)

		user, err := svc.Update(context.Background(), userID, &name, nil)
		assert.NoError(t, err)
		assert.Equal(t, name, user.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		writer.EXPECT().Update(gomock.Any(), userID, &name, gomock.Nil()).Return(nil, nil)

		user, err := svc.Update(context.Background(), userID, &name, nil)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
