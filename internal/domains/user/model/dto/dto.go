package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentwheels/internal/domains/user/model"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	gModel "rentwheels/shared/model"
	"rentwheels/shared/timezone"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword string, at time.Time) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	return model.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Username: r.Username,
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.NewMetadata(actor, at),
	}
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"  db:"name"  validate:"omitempty,max=100"`
	Email *string `json:"email,omitempty" db:"email" validate:"omitempty,email"`
	Role  *string `json:"role,omitempty"  db:"role"  validate:"omitempty,oneof=admin user"`
}

type UserFilter struct {
	Search string
	Role   string
}

func (f *UserFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Search = strings.TrimSpace(query.Get("search"))
	f.Role = query.Get("role")
}

func (f *UserFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	if f.Search != "" {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_username", Field: model.FieldUsername, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	if f.Role != "" {
		group = group.And(gDto.Filter{Field: model.FieldRole, Value: f.Role, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Username = user.Username
	r.Role = user.Role

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
