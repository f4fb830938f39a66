package services

import (
	"fmt"
	"strconv"
)

// ValidatePaginationParams parses and bounds page/per_page query parameters.
func ValidatePaginationParams(pageStr, perPageStr string) (int, int, error) {
	page := 1
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
		}
		page = p
	}

	perPage := 10
	if perPageStr != "" {
		pp, err := strconv.Atoi(perPageStr)
		if err != nil || pp < 1 || pp > 100 {
			return 0, 0, fmt.Errorf("invalid per_page parameter: must be between 1 and 100")
		}
		perPage = pp
	}

	return page, perPage, nil
}
