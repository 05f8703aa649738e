package retailserver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/retail-inventory-api/internal/shared/paging"
)

// Page is the HTTP envelope of a paged listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func toPage[S, T any](result paging.Result[S], fn func(S) T) Page[T] {
	mapped := paging.Map(result, fn)
	return Page[T]{
		Items:      mapped.Items,
		TotalCount: mapped.TotalCount,
		PageNumber: mapped.PageNumber,
		PageSize:   mapped.PageSize,
		TotalPages: mapped.TotalPages(),
	}
}

type listParams struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

// parseListParams reads pageNumber, pageSize, sortBy and sortDirection.
// Missing integers are zero so the services apply their defaults.
func parseListParams(c *gin.Context, defaultDirection string) (listParams, error) {
	number, err := intQuery(c, "pageNumber")
	if err != nil {
		return listParams{}, err
	}
	size, err := intQuery(c, "pageSize")
	if err != nil {
		return listParams{}, err
	}
	return listParams{
		PageNumber:    number,
		PageSize:      size,
		SortBy:        c.Query("sortBy"),
		SortDirection: c.DefaultQuery("sortDirection", defaultDirection),
	}, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}
