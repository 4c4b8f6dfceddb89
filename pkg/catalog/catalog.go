// Package catalog defines the reference catalog of canonical country
// names and their regions. The catalog is the sole source of truth for
// region data after enrichment.
package catalog

// Entry is one row of the reference catalog file.
type Entry struct {
	CanonicalName string `yaml:"canonical_name"`
	Region        string `yaml:"region"`
}

// Catalog is an immutable country → region lookup built from catalog
// entries. Entries without a region are excluded at construction; such
// countries cannot be matched to a useful entry downstream.
type Catalog struct {
	names   []string
	regions map[string]string
	dropped int
}

// New builds a catalog from entries. Entries with an empty region are
// dropped; duplicate canonical names keep the first occurrence.
func New(entries []Entry) *Catalog {
	res := &Catalog{regions: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.CanonicalName == "" {
			continue
		}
		if e.Region == "" {
			res.dropped++
			continue
		}
		if _, ok := res.regions[e.CanonicalName]; ok {
			res.dropped++
			continue
		}
		res.names = append(res.names, e.CanonicalName)
		res.regions[e.CanonicalName] = e.Region
	}
	return res
}

// Names returns the canonical names in catalog order.
func (c *Catalog) Names() []string {
	res := make([]string, len(c.names))
	copy(res, c.names)
	return res
}

// Region returns the region of a canonical name.
func (c *Catalog) Region(name string) (string, bool) {
	region, ok := c.regions[name]
	return region, ok
}

// Len returns the number of usable entries.
func (c *Catalog) Len() int { return len(c.names) }

// Dropped returns how many entries were excluded for a missing region
// or a duplicate canonical name.
func (c *Catalog) Dropped() int { return c.dropped }

// Loader loads the reference catalog from its backing store. The load
// happens once per process; implementations cache the result.
type Loader interface {
	Load() (*Catalog, error)
}
