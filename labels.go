package rubima

import "strconv"

// Label is a named program position used as a jump target. A Label is shared
// by every operand that references it.
type Label struct {
	Name string
	ID   uint32

	pos int32 // -1 until resolved
}

// Pos returns the label's resolved program counter, or -1 if unresolved.
func (label *Label) Pos() int32 { return label.pos }

// Resolved returns true once the label's definition has been parsed.
func (label *Label) Resolved() bool { return label.pos >= 0 }

func (label *Label) String() string {
	if label.pos < 0 {
		return ":" + label.Name + "@?"
	}
	return ":" + label.Name + "@" + strconv.Itoa(int(label.pos))
}

// Labels is a registry of labels, assigning each distinct name a stable
// identity starting at 1.
type Labels struct {
	labels []*Label
	ids    map[string]uint32
}

// Label returns the label with the given identity, or nil.
func (ls *Labels) Label(id uint32) *Label {
	if i := int(id) - 1; i >= 0 && i < len(ls.labels) {
		return ls.labels[i]
	}
	return nil
}

// Lookup returns the label with the given name, or nil if it has never been
// defined or referenced.
func (ls *Labels) Lookup(name string) *Label {
	return ls.Label(ls.ids[name])
}

// Define returns the label for name, creating an unresolved one the first
// time name is seen.
func (ls *Labels) Define(name string) *Label {
	id, defined := ls.ids[name]
	if !defined {
		if ls.ids == nil {
			ls.ids = make(map[string]uint32)
		}
		id = uint32(len(ls.labels)) + 1
		ls.labels = append(ls.labels, &Label{Name: name, ID: id, pos: -1})
		ls.ids[name] = id
	}
	return ls.labels[id-1]
}

// Resolve records label's program position. A label may only be resolved
// once; resolving it again fails with ErrDuplicateLabel.
func (ls *Labels) Resolve(label *Label, pos int32) error {
	if label.Resolved() {
		return duplicateLabelError{label.Name, label.pos}
	}
	label.pos = pos
	return nil
}

// Len returns how many distinct labels have been seen.
func (ls *Labels) Len() int { return len(ls.labels) }

// Unresolved returns every label seen but not yet resolved, in identity
// order.
func (ls *Labels) Unresolved() (labels []*Label) {
	for _, label := range ls.labels {
		if !label.Resolved() {
			labels = append(labels, label)
		}
	}
	return labels
}
