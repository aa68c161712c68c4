// Package collect provides small generic collection helpers shared by
// the engine and its tooling.
package collect

// Dedupe returns xs without duplicates, keeping the first occurrence of
// each key in order.
func Dedupe[T any, K comparable](xs []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(xs))
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		k := key(x)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, x)
	}
	return out
}

// Flatten concatenates nested slices into a single level, preserving
// order.
func Flatten[T any](xss [][]T) []T {
	n := 0
	for _, xs := range xss {
		n += len(xs)
	}
	out := make([]T, 0, n)
	for _, xs := range xss {
		out = append(out, xs...)
	}
	return out
}

// GroupBy buckets xs by key. Within a bucket, elements keep their
// encounter order.
func GroupBy[T any, K comparable](xs []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, x := range xs {
		k := key(x)
		out[k] = append(out[k], x)
	}
	return out
}

// Partition splits xs into the elements satisfying pred and the rest,
// preserving order in both halves.
func Partition[T any](xs []T, pred func(T) bool) (yes, no []T) {
	for _, x := range xs {
		if pred(x) {
			yes = append(yes, x)
		} else {
			no = append(no, x)
		}
	}
	return yes, no
}
