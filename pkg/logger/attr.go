package logger

import "log/slog"

// Error records err under "error". Nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the acting account under "user_id".
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

// StoreID records a store identifier under "store_id".
func StoreID(id int64) slog.Attr {
	return slog.Int64("store_id", id)
}

// ProductID records a product identifier under "product_id".
func ProductID(id int64) slog.Attr {
	return slog.Int64("product_id", id)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Operation records the name of the API operation being authorized.
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Reason records why a request was rejected.
func Reason(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("reason", err.Error())
}

// Email records an address. Callers pass an already masked value.
func Email(masked string) slog.Attr {
	return slog.String("email", masked)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
