package dto_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentwheels/shared/constant"
	"rentwheels/shared/dto"
	"rentwheels/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	at := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.NewMetadata("admin-id", at))

	assert.Equal(t, "admin-id", metadata.CreatedBy)
	assert.Equal(t, "admin-id", metadata.ModifiedBy)
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.NotEmpty(t, metadata.CreatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		defaults bool
		expected dto.QueryParams
	}{
		{"defaults applied", "/v1/cars", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"no defaults", "/v1/cars", false, dto.QueryParams{}},
		{"explicit", "/v1/cars?page=3&limit=20&sort_by=name&sort_dir=asc", true, dto.QueryParams{Page: 3, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc}},
		{"invalid numbers ignored", "/v1/cars?page=-1&limit=abc", true, dto.QueryParams{Page: 1, Limit: 10}},
		{"invalid direction ignored", "/v1/cars?sort_dir=sideways", false, dto.QueryParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sortable(t *testing.T) {
	params := dto.QueryParams{SortBy: "password_hash; DROP TABLE users"}
	params.Sortable("name", "price_per_day")

	assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "price_per_day", SortDir: dto.SortDirAsc}
	params.Sortable("name", "price_per_day")

	assert.Equal(t, "price_per_day", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{"eq with table", dto.Filter{Field: "status", Value: "Available", Operator: dto.FilterOperatorEq, Table: "cars"}, "cars.status = :status", map[string]any{"status": "Available"}},
		{"not eq", dto.Filter{Field: "role", Value: "admin", Operator: dto.FilterOperatorNotEq}, "role != :role", map[string]any{"role": "admin"}},
		{"less eq with arg name", dto.Filter{ArgName: "max_price", Field: "price_per_day", Value: 3000.0, Operator: dto.FilterOperatorLessEq}, "price_per_day <= :max_price", map[string]any{"max_price": 3000.0}},
		{"greater eq", dto.Filter{Field: "end_date", Value: "2024-01-02", Operator: dto.FilterOperatorGreaterEq}, "end_date >= :end_date", map[string]any{"end_date": "2024-01-02"}},
		{"like", dto.Filter{Field: "name", Value: "swift", Operator: dto.FilterOperatorLike}, "LOWER(name) LIKE LOWER(:name)", map[string]any{"name": "%swift%"}},
		{"in slice", dto.Filter{Field: "status", Value: []string{"Upcoming", "Completed"}, Operator: dto.FilterOperatorIn}, "status IN (:status_0, :status_1)", map[string]any{"status_0": "Upcoming", "status_1": "Completed"}},
		{"in empty slice", dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn}, "FALSE", map[string]any{}},
		{"plain", dto.Filter{Value: "seats > 4", Operator: dto.FilterPlainQuery}, "(seats > 4)", map[string]any{}},
		{"is null", dto.Filter{Field: "image", Operator: dto.FilterIsNull}, "image IS NULL", map[string]any{}},
		{"is not null", dto.Filter{Field: "image", Operator: dto.FilterIsNotNull, Table: "cars"}, "cars.image IS NOT NULL", map[string]any{}},
		{"unknown", dto.Filter{Field: "x", Operator: "between"}, "", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.NewFilterGroup(dto.Filter{Field: "status", Value: "Upcoming", Operator: dto.FilterOperatorEq})
	group.Filters = append(group.Filters, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{ArgName: "customer_a", Field: "customer_id", Value: "u1", Operator: dto.FilterOperatorEq},
			dto.Filter{ArgName: "customer_b", Field: "customer_id", Value: "u2", Operator: dto.FilterOperatorEq},
		},
	})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (customer_id = :customer_a OR customer_id = :customer_b))", where)
	assert.Len(t, args, 3)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.True(t, group.IsEmpty())
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_And(t *testing.T) {
	group := dto.FilterGroup{}.And(dto.Filter{Field: "seats", Value: 5, Operator: dto.FilterOperatorEq})

	where, _ := group.GetWhereClause()

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, "(seats = :seats)", where)
}
