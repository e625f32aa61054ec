package countries

import "github.com/meetzone/meetzone/internal/domain"

// countriesResponse wraps a directory snapshot or search result
type countriesResponse struct {
	Countries []domain.Country `json:"countries"`
	Count     int              `json:"count" example:"12"`
}
