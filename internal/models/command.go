// Package models defines the domain types for vimcmd.
package models

// Command is one catalog entry loaded from a source file.
type Command struct {
	ID    string // normalized from Keys
	Keys  string
	Short string
	Long  string
	// Extra holds every source column other than keys, short and long.
	Extra map[string]string
}

// Field returns the value of a named source column.
func (c Command) Field(name string) (string, bool) {
	switch name {
	case "keys":
		return c.Keys, true
	case "short":
		return c.Short, true
	case "long":
		return c.Long, true
	}
	v, ok := c.Extra[name]
	return v, ok
}
