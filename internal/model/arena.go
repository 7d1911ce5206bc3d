package model

import (
	"strconv"
	"strings"

	"comma/internal/types"
)

// instanceArena stores the instances of one model. Indices are 1-based so
// that slot 0 never names an instance. The index maps argument
// fingerprints to slots.
type instanceArena[T any] struct {
	data  []T
	index map[string]uint32
}

func newInstanceArena[T any]() *instanceArena[T] {
	return &instanceArena[T]{index: make(map[string]uint32, 4)}
}

// allocate appends value and returns its slot.
func (a *instanceArena[T]) allocate(key string, value T) uint32 {
	a.data = append(a.data, value)
	slot := slotOf(len(a.data))
	a.index[key] = slot
	return slot
}

// next returns the slot the next allocation will receive.
func (a *instanceArena[T]) next() uint32 {
	return slotOf(len(a.data) + 1)
}

func (a *instanceArena[T]) get(slot uint32) (T, bool) {
	var zero T
	if slot == 0 || int(slot) > len(a.data) {
		return zero, false
	}
	return a.data[slot-1], true
}

func (a *instanceArena[T]) lookup(key string) (T, bool) {
	slot, ok := a.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return a.get(slot)
}

// all returns instances in creation order. READONLY
func (a *instanceArena[T]) all() []T {
	return a.data
}

func (a *instanceArena[T]) len() int {
	return len(a.data)
}

// argsKey fingerprints an argument tuple by the identity of its elements.
// Types are canonical, so equal TypeIDs mean equal types.
func argsKey(args []types.TypeID) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte('#')
		}
		b.WriteString(strconv.FormatUint(uint64(arg), 10))
	}
	return b.String()
}
