package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "reception-1",
		ModifiedBy: "reception-2",
	})

	parsedCreated, err := time.Parse(time.RFC3339, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsedCreated.Equal(createdAt))

	parsedModified, err := time.Parse(time.RFC3339, metadata.ModifiedAt)
	assert.NoError(t, err)
	assert.True(t, parsedModified.Equal(modifiedAt))

	assert.Equal(t, "reception-1", metadata.CreatedBy)
	assert.Equal(t, "reception-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "with all valid parameters",
			query:    "?page=2&limit=20&sort_by=number&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "number", SortDir: "ASC"},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid and negative values fall back",
			query:          "?page=invalid&limit=-10",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "?limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			query:    "?sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms"+tt.query, nil)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&dto.QueryParams{Page: 1, Limit: 20}).Offset())
	assert.Equal(t, 40, (&dto.QueryParams{Page: 3, Limit: 20}).Offset())
	assert.Equal(t, 0, (&dto.QueryParams{Limit: 20}).Offset())
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "number; DROP TABLE rooms"}
	params.RestrictSort("rooms", "number", "floor")

	assert.Equal(t, "rooms.created_at", params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

	params = dto.QueryParams{SortBy: "floor", SortDir: dto.SortDirAsc}
	params.RestrictSort("rooms", "number", "floor")

	assert.Equal(t, "rooms.floor", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq, Table: "rooms"},
			wantWhere: "rooms.status = :status",
			wantArgs:  map[string]any{"status": "available"},
		},
		{
			name:      "strict less with arg name",
			filter:    dto.Filter{Field: "planned_check_in", Value: 2, Operator: dto.FilterOperatorLess, ArgName: "candidate_end"},
			wantWhere: "planned_check_in < :candidate_end",
			wantArgs:  map[string]any{"candidate_end": 2},
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{Field: "planned_check_out", Value: 1, Operator: dto.FilterOperatorGreater, ArgName: "candidate_start"},
			wantWhere: "planned_check_out > :candidate_start",
			wantArgs:  map[string]any{"candidate_start": 1},
		},
		{
			name:      "in expands slices",
			filter:    dto.Filter{Field: "status", Value: []string{"confirmed", "checked_in"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "confirmed", "status_1": "checked_in"},
		},
		{
			name:      "in binds a single value",
			filter:    dto.Filter{Field: "status", Value: "cleaning", Operator: dto.FilterOperatorIn, Table: "rooms"},
			wantWhere: "rooms.status IN (:status)",
			wantArgs:  map[string]any{"status": "cleaning"},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "status", Value: "cleaning", Operator: "like"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "assigned_to", Operator: dto.FilterIsNull},
			wantWhere: "assigned_to IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "room-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, ArgName: "s1"},
					dto.Filter{Field: "status", Value: "in_progress", Operator: dto.FilterOperatorEq, ArgName: "s2"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :s1 OR status = :s2))", where)
	assert.Equal(t, map[string]any{"room_id": "room-1", "s1": "pending", "s2": "in_progress"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_AddEq(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	group.AddEq("rooms", "status", "cleaning")
	group.AddEq("rooms", "type", "")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.status = :status)", where)
	assert.Equal(t, map[string]any{"status": "cleaning"}, args)
}

func TestStatusGuard(t *testing.T) {
	guard := dto.StatusGuard("housekeeping_jobs", "id", "j1", "status", "in_progress")

	where, args := guard.GetWhereClause()

	assert.Equal(t, "(housekeeping_jobs.id = :id AND housekeeping_jobs.status = :current_status)", where)
	assert.Equal(t, map[string]any{"id": "j1", "current_status": "in_progress"}, args)
}

func TestOverlap(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.Overlap("", "planned_check_in", "planned_check_out", 10, 13),
			dto.Filter{Field: "ignored", Operator: "between"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (planned_check_in < :interval_end AND planned_check_out > :interval_start))", where)
	assert.Equal(t, map[string]any{"room_id": "r1", "interval_end": 13, "interval_start": 10}, args)
}
