package types

import (
	"slices"
	"strconv"
	"strings"

	"comma/internal/source"
)

// Field is one component of a record type.
type Field struct {
	Name source.StringID
	Type TypeID
}

// RecordInfo stores the fields of a record type.
type RecordInfo struct {
	Fields []Field
}

// RegisterRecord creates or finds the record type with exactly these fields.
func (in *Interner) RegisterRecord(fields []Field) TypeID {
	key := recordKey(fields)
	if id, ok := in.recordIndex[key]; ok {
		return id
	}
	in.records = append(in.records, RecordInfo{Fields: slices.Clone(fields)})
	slot := slotOf(len(in.records)-1, "record info")
	id := in.internRaw(Type{Kind: KindRecord, Payload: slot})
	in.recordIndex[key] = id
	return id
}

// RecordInfo returns the fields of a record TypeID.
func (in *Interner) RecordInfo(id TypeID) (*RecordInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRecord || tt.Payload == 0 || int(tt.Payload) >= len(in.records) {
		return nil, false
	}
	return &in.records[tt.Payload], true
}

func recordKey(fields []Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatUint(uint64(f.Name), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(f.Type), 10))
	}
	return b.String()
}
