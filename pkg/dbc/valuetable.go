package dbc

import "github.com/candbc/candbc-go/pkg/seq"

// ValueMapEntry maps one raw value to a label.
type ValueMapEntry struct {
	Index int64
	Label *string
}

// ValueMap is an owned, ordered index -> label sequence.
type ValueMap = seq.List[*ValueMapEntry]

// Clone returns a deep copy of the entry.
func (e *ValueMapEntry) Clone() *ValueMapEntry {
	if e == nil {
		return nil
	}
	return &ValueMapEntry{Index: e.Index, Label: cloneText(e.Label)}
}

// Release drops the entry's label.
func (e *ValueMapEntry) Release() {
	if e == nil {
		return
	}
	*e = ValueMapEntry{}
}

// Lookup returns the label for index in vm.
func Lookup(vm *ValueMap, index int64) (string, bool) {
	for e := range vm.All() {
		if e.Index == index && e.Label != nil {
			return *e.Label, true
		}
	}
	return "", false
}

// ValueTable is a named, reusable value map (VAL_TABLE_). Signals and
// environment variables refer to tables by name only.
type ValueTable struct {
	Name     *string
	Comment  *string
	ValueMap *ValueMap
}

// ValueTableList is the owned value table sequence of a document.
type ValueTableList = seq.List[*ValueTable]

// Clone returns a deep copy of the table.
func (t *ValueTable) Clone() *ValueTable {
	if t == nil {
		return nil
	}
	return &ValueTable{
		Name:     cloneText(t.Name),
		Comment:  cloneText(t.Comment),
		ValueMap: t.ValueMap.Clone(),
	}
}

// Release drops the table and its entries.
func (t *ValueTable) Release() {
	if t == nil {
		return
	}
	t.ValueMap.Release()
	*t = ValueTable{}
}
