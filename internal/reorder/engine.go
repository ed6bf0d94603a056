// Package reorder tracks one board's drag state and splices its to-do list on drop.
//
// Every operation runs on the UI update loop and completes synchronously. The engine never
// mutates a caller's slice: CommitDrop returns a fresh list that the caller publishes as a
// whole to the list owner.
package reorder

import "github.com/evanschultz/todoboard/internal/domain"

// HoverBeforeFirst is the hover index reported by the board header drop region.
const HoverBeforeFirst = -1

// SeparatorKind identifies which drop marker a row should render.
type SeparatorKind int

// SeparatorNone and related constants define row marker placement.
const (
	SeparatorNone SeparatorKind = iota
	// SeparatorTop sits above the first row while the header is hovered.
	SeparatorTop
	// SeparatorBottom sits under the hovered row.
	SeparatorBottom
	// SeparatorTrailing sits under the last row while the empty area below the list is hovered.
	SeparatorTrailing
)

// Engine holds the transient drag state for one board view.
type Engine struct {
	dragging    domain.Todo
	hasDragging bool
	hover       int
	hasHover    bool
}

// BeginDrag records todo as the dragged item.
func (e *Engine) BeginDrag(todo domain.Todo) {
	e.dragging = todo
	e.hasDragging = true
}

// UpdateHover records the candidate insertion index. No validation happens here.
func (e *Engine) UpdateHover(index int) {
	e.hover = index
	e.hasHover = true
}

// CommitDrop splices the dragged item into its hovered position.
//
// The item is located in current by id, not by a cached index, because the list may have
// been replaced since BeginDrag. changed is false when no drag was active, no hover was
// recorded, or the item is gone. Drag state is cleared in all cases.
func (e *Engine) CommitDrop(current []domain.Todo) ([]domain.Todo, bool) {
	defer e.CancelDrag()
	if !e.hasDragging || !e.hasHover {
		return current, false
	}
	return Move(current, e.dragging.ID, e.hover)
}

// CancelDrag clears drag state without touching any list.
func (e *Engine) CancelDrag() {
	e.dragging = domain.Todo{}
	e.hasDragging = false
	e.hover = 0
	e.hasHover = false
}

// Dragging returns the dragged item, if any.
func (e Engine) Dragging() (domain.Todo, bool) {
	return e.dragging, e.hasDragging
}

// Hover returns the recorded hover index, if any.
func (e Engine) Hover() (int, bool) {
	return e.hover, e.hasHover
}

// Active reports whether a drag is in progress.
func (e Engine) Active() bool {
	return e.hasDragging
}

// IsDragging reports whether id is the dragged item.
func (e Engine) IsDragging(id string) bool {
	return e.hasDragging && e.dragging.ID == id
}

// Separator reports the drop marker for row index in a list of length rows.
func (e Engine) Separator(index, length int) SeparatorKind {
	if !e.hasHover {
		return SeparatorNone
	}
	switch {
	case index == 0 && e.hover == HoverBeforeFirst:
		return SeparatorTop
	case e.hover == index:
		return SeparatorBottom
	case index == length-1 && e.hover == length:
		return SeparatorTrailing
	default:
		return SeparatorNone
	}
}

// Move returns a copy of list with the item identified by id re-inserted at hover.
//
// hover <= 0 (HoverBeforeFirst included) places the item first; hover >= len(list) places
// it last. The item keeps the field values found in list. When id is not present the input
// is returned unchanged with changed=false.
func Move(list []domain.Todo, id string, hover int) ([]domain.Todo, bool) {
	from := -1
	for idx, todo := range list {
		if todo.ID == id {
			from = idx
			break
		}
	}
	if from < 0 {
		return list, false
	}
	item := list[from]

	out := make([]domain.Todo, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	// Clamp against the pre-removal length.
	target := hover
	switch {
	case hover <= 0:
		target = 0
	case hover >= len(list):
		target = len(out)
	}

	out = append(out, domain.Todo{})
	copy(out[target+1:], out[target:])
	out[target] = item
	return out, true
}
