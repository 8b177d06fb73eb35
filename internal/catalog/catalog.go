// Package catalog resolves command sources and parses them into catalogs of
// Vim commands keyed by a normalized identifier.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/starford/vimcmd/internal/apperr"
	"github.com/starford/vimcmd/internal/models"
	"github.com/starford/vimcmd/internal/storage"
)

// Delimiter separates fields in source files.
const Delimiter = ';'

const (
	colKeys  = "keys"
	colShort = "short"
	colLong  = "long"
)

// Catalog is the set of commands loaded from one source.
type Catalog struct {
	source   string
	commands map[string]models.Command
}

// New builds a catalog from already-parsed commands. Commands sharing an ID
// keep the last one.
func New(source string, commands ...models.Command) *Catalog {
	c := &Catalog{source: source, commands: make(map[string]models.Command, len(commands))}
	for _, cmd := range commands {
		c.commands[cmd.ID] = cmd
	}
	return c
}

// Source returns the path the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// Len returns the number of distinct commands.
func (c *Catalog) Len() int { return len(c.commands) }

// Get returns the command with the given identifier.
func (c *Catalog) Get(id string) (models.Command, bool) {
	cmd, ok := c.commands[id]
	return cmd, ok
}

// IDs returns every identifier in sorted order.
func (c *Catalog) IDs() []string {
	var ids []string
	for id := range c.commands {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Load reads and parses the source file at path.
func Load(path string) (*Catalog, error) {
	data, err := storage.Read(path)
	if err != nil {
		return nil, err
	}
	cat, err := Parse(path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}

// Parse reads a delimited source with a header row. The header must contain
// a "keys" column; "short" and "long" fill the named fields and any other
// column is kept in Command.Extra.
func Parse(source string, r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.ErrMissingKeysColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if !slices.Contains(header, colKeys) {
		return nil, apperr.ErrMissingKeysColumn
	}

	cat := &Catalog{source: source, commands: make(map[string]models.Command)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cmd := commandFromRow(header, record)
		if cmd.ID == "" {
			continue
		}
		cat.commands[cmd.ID] = cmd
	}
	return cat, nil
}

func commandFromRow(header, record []string) models.Command {
	var cmd models.Command
	for i, name := range header {
		value := ""
		if i < len(record) {
			value = record[i]
		}
		switch name {
		case colKeys:
			cmd.Keys = value
		case colShort:
			cmd.Short = value
		case colLong:
			cmd.Long = value
		default:
			if cmd.Extra == nil {
				cmd.Extra = make(map[string]string)
			}
			cmd.Extra[name] = value
		}
	}
	cmd.ID = KeysToID(cmd.Keys)
	return cmd
}
