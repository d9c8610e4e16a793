package catalog

import "errors"

var ErrEmptyReview = errors.New("review text is empty")
