package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	stored := &models.User{ID: "u-1", Name: "Ann", Email: "ann@example.com", Role: models.RoleUser}
	mockRepo.On("GetByID", ctx, "u-1").Return(stored, nil).Once()
	mockRepo.On("GetByEmail", ctx, "ann@new.example.com").Return(nil, notFound("user")).Once()
	mockRepo.On("Update", ctx, stored).Return(nil).Once()

	admin := models.RoleAdmin
	updated, err := service.UpdateUser(ctx, "u-1", services.UpdateUserInput{
		Email: strPtr("ann@new.example.com"),
		Phone: strPtr("555-0100"),
		Role:  &admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "ann@new.example.com", updated.Email)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUserRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, "u-1").Return(&models.User{ID: "u-1", Email: "a@b.co"}, nil).Once()
		_, err := services.NewUserService(mockRepo).UpdateUser(ctx, "u-1", services.UpdateUserInput{Email: strPtr("nope")})
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFormat))
	})

	t.Run("unknown role", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, "u-1").Return(&models.User{ID: "u-1"}, nil).Once()
		role := models.Role(7)
		_, err := services.NewUserService(mockRepo).UpdateUser(ctx, "u-1", services.UpdateUserInput{Role: &role})
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFormat))
	})

	t.Run("email taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, "u-1").Return(&models.User{ID: "u-1", Email: "a@b.co"}, nil).Once()
		mockRepo.On("GetByEmail", ctx, "taken@b.co").Return(&models.User{ID: "u-2"}, nil).Once()
		_, err := services.NewUserService(mockRepo).UpdateUser(ctx, "u-1", services.UpdateUserInput{Email: strPtr("taken@b.co")})
		assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, "ghost").Return(nil, notFound("user")).Once()
		_, err := services.NewUserService(mockRepo).UpdateUser(ctx, "ghost", services.UpdateUserInput{Name: strPtr("X")})
		assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("Delete", ctx, "u-1").Return(nil).Once()
	mockRepo.On("Delete", ctx, "ghost").Return(notFound("user")).Once()

	assert.NoError(t, service.DeleteUser(ctx, "u-1"))
	assert.True(t, apperror.HasCode(service.DeleteUser(ctx, "ghost"), apperror.CodeNotFound))
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_CreateAndRename(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)

	mockRepo.On("Create", ctx, &models.Category{Name: "Books"}).Return(nil).Once()
	created, err := service.CreateCategory(ctx, services.CategoryInput{Name: " Books "})
	require.NoError(t, err)
	assert.Equal(t, "Books", created.Name)

	_, err = service.CreateCategory(ctx, services.CategoryInput{Name: "  "})
	assert.True(t, apperror.HasCode(err, apperror.CodeMissingField))

	stored := &models.Category{ID: "c-1", Name: "Books"}
	mockRepo.On("GetByID", ctx, "c-1").Return(stored, nil).Once()
	mockRepo.On("Update", ctx, stored).Return(nil).Once()
	renamed, err := service.RenameCategory(ctx, "c-1", services.CategoryInput{Name: "Novels"})
	require.NoError(t, err)
	assert.Equal(t, "Novels", renamed.Name)

	mockRepo.On("GetByID", ctx, "ghost").Return(nil, notFound("category")).Once()
	_, err = service.RenameCategory(ctx, "ghost", services.CategoryInput{Name: "X"})
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	mockRepo.AssertExpectations(t)
}
