package guard

import "context"

type storeRefKey struct{}

// StoreRef returns the store id a create operation was authorized against.
// Handlers of Owned create operations must write into this store only.
func StoreRef(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(storeRefKey{}).(int64)
	return id, ok
}

func withStoreRef(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, storeRefKey{}, id)
}
