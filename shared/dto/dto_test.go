package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"atrium/shared/constant"
	"atrium/shared/dto"
	"atrium/shared/model"
	"atrium/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := timezone.Format(createdAt, constant.DateFormat)
	expectedModifiedAt := timezone.Format(modifiedAt, constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: "DESC",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "building",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   3,
				Limit:  constant.DefaultValueLimit,
				SortBy: "building",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/test")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "equality with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "pending",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name: "like wraps value in wildcards",
			filter: dto.Filter{
				Field:    "name",
				Value:    "workshop",
				Operator: dto.FilterOperatorLike,
				Table:    "spaces",
			},
			wantWhere: "LOWER(spaces.name) LIKE LOWER(:name) ",
			wantArgs:  map[string]any{"name": "%workshop%"},
		},
		{
			name: "in expands slice values",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"pending", "approved"},
				Operator: dto.FilterOperatorIn,
				Table:    "reservations",
			},
			wantWhere: "reservations.status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "approved"},
		},
		{
			name: "is null has no args",
			filter: dto.Filter{
				Field:    "reservation_id",
				Operator: dto.FilterIsNull,
				Table:    "user_ratings",
			},
			wantWhere: "user_ratings.reservation_id IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, want := range tt.wantArgs {
				got, ok := args[key]
				if !ok {
					t.Errorf("expected arg %s to exist", key)
				} else if got != want {
					t.Errorf("expected arg %s to be %v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "space_id", Value: "space-id-1", Operator: dto.FilterOperatorEq, Table: "reservations"},
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "reservations"},
		},
	}

	where, args := group.GetWhereClause()

	want := "(reservations.space_id = :space_id AND reservations.status = :status)"
	if where != want {
		t.Errorf("expected where %q, got %q", want, where)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestFilterGroup_GetWhereClauseEmpty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %d", len(args))
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
