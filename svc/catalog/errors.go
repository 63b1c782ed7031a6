package catalog

import "errors"

var (
	ErrStoreNotFound   = errors.New("catalog: store not found")
	ErrProductNotFound = errors.New("catalog: product not found")
)
