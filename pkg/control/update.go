package control

import (
	"encoding/json"
	"slices"
)

// ContentSlot is the slot name attached to a control's single child.
const ContentSlot = "content"

// Update is the serialized change set produced by one flush.
type Update struct {
	// ID identifies the control on the renderer.
	ID string `json:"id"`
	// Type is the renderer control type name.
	Type string `json:"t"`
	// Slot names where the renderer mounts this control in its parent.
	Slot string `json:"n,omitempty"`
	// Attrs maps attribute names to their encoded values.
	Attrs map[string]string `json:"attrs,omitempty"`
	// Removed lists attributes the renderer should reset to its defaults.
	Removed []string `json:"removed,omitempty"`
	// Children holds nested control updates.
	Children []Update `json:"children,omitempty"`
}

// Attr returns the encoded value of name and whether it is present.
func (u Update) Attr(name string) (string, bool) {
	v, ok := u.Attrs[name]
	return v, ok
}

// Child returns the child update mounted in slot, if any.
func (u Update) Child(slot string) (Update, bool) {
	for _, c := range u.Children {
		if c.Slot == slot {
			return c, true
		}
	}
	return Update{}, false
}

// IsRemoved reports whether name is listed in Removed.
func (u Update) IsRemoved(name string) bool {
	return slices.Contains(u.Removed, name)
}

// Empty reports whether the update carries no attributes, removals, or children.
func (u Update) Empty() bool {
	return len(u.Attrs) == 0 && len(u.Removed) == 0 && len(u.Children) == 0
}

// Walk calls fn for u and every nested update, parents first.
func (u Update) Walk(fn func(Update)) {
	fn(u)
	for _, c := range u.Children {
		c.Walk(fn)
	}
}

// Marshal encodes the update as JSON.
func (u Update) Marshal() ([]byte, error) {
	return json.Marshal(u)
}
