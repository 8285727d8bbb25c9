package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentwheels/config"
	"rentwheels/infras/otel/mocks"
	userMocks "rentwheels/internal/domains/user/mocks"
	"rentwheels/internal/domains/user/model"
	"rentwheels/internal/domains/user/model/dto"
	"rentwheels/internal/domains/user/service"
	"rentwheels/shared/cache"
	cacheMocks "rentwheels/shared/cache/mocks"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	"rentwheels/shared/password"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.App.AdminUsername = "ADMIN"

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{Name: "Jane Doe", Email: "jane@example.com", Username: "jane", Password: "secret1"}

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation hashes password",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, constant.RoleUser, user.Role)
					assert.NoError(t, password.Verify("secret1", user.Password))

					return nil
				})
			},
		},
		{
			name: "duplicate username",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name:      "invalid email",
			req:       dto.CreateUserRequest{Name: "Jane", Email: "jane", Username: "jane", Password: "secret1"},
			setupMock: func(fixture) {},
			wantCode:  400,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(adminContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "jane", res.Username)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "admin account is never deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-admin", Username: "ADMIN", Role: constant.RoleAdmin}, nil)
			},
			wantCode: 403,
			wantMsg:  service.MessageCannotDeleteAdmin,
		},
		{
			name: "regular user deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Username: "jane", Role: constant.RoleUser}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "another admin can be deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-2", Username: "ops", Role: constant.RoleAdmin}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "missing user",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: 404,
			wantMsg:  "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminContext(), "id")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantMsg, failure.GetMessage(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(adminContext(), dto.UpdateUserRequest{}, "u-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("admin role cannot be dropped", func(t *testing.T) {
		f := newFixture(t)
		role := constant.RoleUser

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-admin", Username: "ADMIN"}, nil)

		err := f.svc.Update(adminContext(), dto.UpdateUserRequest{Role: &role}, "u-admin")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("updates changed columns", func(t *testing.T) {
		f := newFixture(t)
		name := "Jane Roe"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Username: "jane"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Jane Roe", fields[model.FieldName])
				assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])
				assert.NotContains(t, fields, model.FieldRole)

				return nil
			})

		require.NoError(t, f.svc.Update(adminContext(), dto.UpdateUserRequest{Name: &name}, "u-1"))
	})
}

func TestUserService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Username: "jane", Name: "Jane"}, nil)

	res, err := f.svc.Get(adminContext(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, "Jane", res.Name)
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)

	filter := dto.UserFilter{Search: "ja"}

	res, err := f.svc.GetAll(adminContext(), gDto.QueryParams{Page: 1, Limit: 10}, filter.ToFilterGroup())

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
}
