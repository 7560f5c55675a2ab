// Package cart implements the cart state engine: pure transformations over a
// line collection. Callers always receive a new slice; the input is never
// mutated, so two rapid mutations funneled through the owning store each see
// the result of the previous one.
package cart

import "github.com/exoticflavors/exotic-storefront/internal/model"

// AddItem merges a dish into the lines by name: an existing line gains one
// unit, otherwise a new line with quantity 1 is appended. It always succeeds;
// there is no quantity ceiling.
func AddItem(lines []model.CartLine, dish model.CartLine) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines)+1)
	merged := false
	for _, line := range lines {
		if line.Name == dish.Name {
			line.Quantity++
			merged = true
		}
		out = append(out, line)
	}
	if !merged {
		dish.Quantity = 1
		out = append(out, dish)
	}
	return out
}

// ChangeQuantity applies a delta to the named line, clamping the result at 1.
// Reaching zero is only possible through RemoveItem; the post-filter below
// strips non-positive quantities anyway so a zero can never be persisted.
// An unknown name is a no-op.
func ChangeQuantity(lines []model.CartLine, name string, delta int) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Name == name {
			line.Quantity = max(1, line.Quantity+delta)
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// RemoveItem drops the named line entirely. Idempotent if absent.
func RemoveItem(lines []model.CartLine, name string) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Name != name {
			out = append(out, line)
		}
	}
	return out
}

// Clear produces an empty collection.
func Clear() []model.CartLine {
	return []model.CartLine{}
}

// Merge replays every line of src into dst through AddItem semantics, one
// unit at a time. Re-ordering a historical order therefore accumulates into
// a non-empty cart instead of overwriting it.
func Merge(dst []model.CartLine, src []model.CartLine) []model.CartLine {
	for _, line := range src {
		for i := 0; i < line.Quantity; i++ {
			dst = AddItem(dst, line)
		}
	}
	return dst
}

// Subtotal is Σ unitPrice × quantity, recomputed on every call.
func Subtotal(lines []model.CartLine) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.UnitPrice * int64(line.Quantity)
	}
	return sum
}

// ItemCount is the total unit count across all lines, used for the cart
// badge.
func ItemCount(lines []model.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
