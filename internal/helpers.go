package internal

import "strconv"

// ContextValue returns the request value stored under key as T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed URL parameter and whether it parsed.
//
//	id, ok := yatube.Param[int64](c, "id")
//	if !ok {
//	    return yatube.ErrNotFound("post not found")
//	}
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) (T, bool) {
	return convertParam[T](c.Param(name))
}

// Query returns a typed query parameter and whether it parsed.
func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) (T, bool) {
	return convertParam[T](c.Query(name))
}

// QueryDefault returns defaultValue when the parameter is empty or does
// not parse.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

func convertParam[T ~string | ~int | ~int64 | ~bool](raw string) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		out = raw
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		out = v
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		out = v
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		out = v
	default:
		return zero, false
	}
	return out.(T), true
}
