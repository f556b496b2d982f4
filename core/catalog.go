package core

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
)

// StoreItem is a purchasable item in the shop catalog
type StoreItem struct {
	Name string
	// Canonical path of the item's XML file, as the store knows it
	XMLFilename  string
	Combinations []*Combination
}

// Combination is an alternative configuration offered with a store item, referencing another item's XML
type Combination struct {
	// Path to the referenced XML file; may be a $moddir<Name>$/ token until reconciled
	Path string
	// Link is the store item Path was matched to, nil when nothing matched
	Link *StoreItem
	// LinkPath caches the canonical path of Link
	LinkPath string
	// Done is set once the combination has been reconciled, it is never processed again
	Done bool
}

// rawCombination holds the equivalent path fields different game versions and mods use, in preference order
type rawCombination struct {
	XMLFilename string `mapstructure:"xmlFilename"`
	Filename    string `mapstructure:"filename"`
	XML         string `mapstructure:"xml"`
	Link        string `mapstructure:"link"`
	Done        bool   `mapstructure:"done"`
}

// DecodeCombination converts a loosely typed combination table into a Combination.
// The first present of xmlFilename, filename and xml becomes the combination path.
func DecodeCombination(fields map[string]interface{}) (*Combination, error) {
	var raw rawCombination
	if err := mapstructure.Decode(fields, &raw); err != nil {
		return nil, err
	}
	c := &Combination{LinkPath: raw.Link, Done: raw.Done}
	for _, p := range []string{raw.XMLFilename, raw.Filename, raw.XML} {
		if len(p) > 0 {
			c.Path = p
			break
		}
	}
	return c, nil
}

// Catalog is the store's list of items. Only the store populates it; reconciliation reads it and
// mutates combinations in place.
type Catalog struct {
	Items     []*StoreItem
	populated bool
	callbacks []func()
	file      string
}

// NewCatalog creates an empty catalog that will be written to file
func NewCatalog(file string) *Catalog {
	return &Catalog{file: file}
}

// Len returns the number of items in the catalog
func (c *Catalog) Len() int {
	return len(c.Items)
}

// AddItem appends an item. The store calls MarkPopulated once it has added its last item.
func (c *Catalog) AddItem(item *StoreItem) {
	c.Items = append(c.Items, item)
}

// MarkPopulated records that the store has finished adding items and fires the populated callbacks.
// Marking an empty catalog does nothing, as does marking it twice.
func (c *Catalog) MarkPopulated() {
	if c.populated || len(c.Items) == 0 {
		return
	}
	c.populated = true
	callbacks := c.callbacks
	c.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Populated reports whether the store has finished populating the catalog
func (c *Catalog) Populated() bool {
	return c.populated
}

// OnPopulated registers fn to be called once the store has finished populating the catalog.
// If it already has, fn is called immediately.
func (c *Catalog) OnPopulated(fn func()) {
	if c.populated {
		fn()
		return
	}
	c.callbacks = append(c.callbacks, fn)
}

// FindByPath returns the first item whose sanitized canonical path equals p
func (c *Catalog) FindByPath(p string) (*StoreItem, bool) {
	i := slices.IndexFunc(c.Items, func(item *StoreItem) bool {
		return Sanitize(item.XMLFilename) == p
	})
	if i < 0 {
		return nil, false
	}
	return c.Items[i], true
}

// FindByBasename returns the first item whose file name equals the file name of p
func (c *Catalog) FindByBasename(p string) (*StoreItem, bool) {
	base := Basename(p)
	if len(base) == 0 {
		return nil, false
	}
	i := slices.IndexFunc(c.Items, func(item *StoreItem) bool {
		return Basename(Sanitize(item.XMLFilename)) == base
	})
	if i < 0 {
		return nil, false
	}
	return c.Items[i], true
}

// File returns the path the catalog was loaded from
func (c *Catalog) File() string {
	return c.file
}

type catalogFile struct {
	Items []storeItemFile `toml:"items"`
}

type storeItemFile struct {
	Name         string                   `toml:"name,omitempty"`
	XMLFilename  string                   `toml:"xml-filename"`
	Combinations []map[string]interface{} `toml:"combinations,omitempty"`
}

type combinationFile struct {
	XMLFilename string `toml:"xmlFilename"`
	Link        string `toml:"link,omitempty"`
	Done        bool   `toml:"done,omitempty"`
}

type storeItemOut struct {
	Name         string            `toml:"name,omitempty"`
	XMLFilename  string            `toml:"xml-filename"`
	Combinations []combinationFile `toml:"combinations,omitempty"`
}

// LoadCatalog loads a store catalog from a TOML file
func LoadCatalog(file string) (*Catalog, error) {
	var data catalogFile
	if _, err := toml.DecodeFile(file, &data); err != nil {
		return nil, err
	}
	cat := &Catalog{file: file}
	for _, v := range data.Items {
		item := &StoreItem{Name: v.Name, XMLFilename: v.XMLFilename}
		for _, fields := range v.Combinations {
			comb, err := DecodeCombination(fields)
			if err != nil {
				return nil, err
			}
			item.Combinations = append(item.Combinations, comb)
		}
		cat.Items = append(cat.Items, item)
	}
	// Rebind links now that every item exists
	for _, item := range cat.Items {
		for _, comb := range item.Combinations {
			if len(comb.LinkPath) == 0 {
				continue
			}
			if linked, ok := cat.FindByPath(Sanitize(comb.LinkPath)); ok {
				comb.Link = linked
			}
		}
	}
	cat.MarkPopulated()
	return cat, nil
}

// Write saves the catalog file, including reconciliation results
func (c *Catalog) Write() error {
	out := struct {
		Items []storeItemOut `toml:"items"`
	}{}
	for _, item := range c.Items {
		v := storeItemOut{Name: item.Name, XMLFilename: item.XMLFilename}
		for _, comb := range item.Combinations {
			v.Combinations = append(v.Combinations, combinationFile{
				XMLFilename: comb.Path,
				Link:        comb.LinkPath,
				Done:        comb.Done,
			})
		}
		out.Items = append(out.Items, v)
	}

	f, err := os.Create(c.file)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	// Disable indentation
	enc.Indent = ""
	return enc.Encode(out)
}
