package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
)

var errNegative = errors.New("value must not be negative")

// ExtractPagination reads limit and offset from the query string. Both or
// neither must be present; without them every row is returned.
func ExtractPagination(query url.Values) (models.Pagination, error) {
	_, hasLimit := query["limit"]
	_, hasOffset := query["offset"]

	switch {
	case !hasLimit && !hasOffset:
		return models.Pagination{}, nil
	case hasLimit != hasOffset:
		return models.Pagination{}, apperror.MissingParameter()
	}

	limit, err := parseCount(query.Get("limit"))
	if err != nil {
		return models.Pagination{}, err
	}
	offset, err := parseCount(query.Get("offset"))
	if err != nil {
		return models.Pagination{}, err
	}

	return models.Pagination{Limit: &limit, Offset: offset}, nil
}

func parseCount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidInput(err)
	}
	if n < 0 {
		return 0, apperror.InvalidInput(errNegative)
	}
	return n, nil
}
