// Package text resolves message keys used by the generator's logs, the map
// dump and the CLI. The English catalog is embedded; other locales can be
// loaded from disk.
package text

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var catalogs embed.FS

var (
	mu      sync.RWMutex
	current = mustEmbedded("en")
)

func mustEmbedded(lang string) *gotext.Po {
	po, err := embedded(lang)
	if err != nil {
		panic(err)
	}
	return po
}

func embedded(lang string) (*gotext.Po, error) {
	data, err := catalogs.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("text: no embedded catalog for %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}

// Use switches the active catalog to lang. An embedded catalog wins;
// otherwise dir/<lang>.po is read from disk.
func Use(lang, dir string) error {
	po, err := embedded(lang)
	if err != nil {
		data, readErr := os.ReadFile(filepath.Join(dir, lang+".po"))
		if readErr != nil {
			return fmt.Errorf("text: load catalog %q: %w", lang, readErr)
		}
		po = gotext.NewPo()
		po.Parse(data)
	}
	mu.Lock()
	current = po
	mu.Unlock()
	return nil
}

// Get translates key. Keys missing from the catalog are returned unchanged.
// Messages with verbs are formatted by the caller with fmt.Sprintf.
func Get(key string) string {
	mu.RLock()
	po := current
	mu.RUnlock()
	return po.Get(key)
}

// Kind returns the label of a room kind name such as "start".
func Kind(name string) string {
	return Get(key("KIND_", name))
}

// Geometry returns the label of a geometry kind name such as "corner".
func Geometry(name string) string {
	return Get(key("GEOMETRY_", name))
}

func key(prefix, name string) string {
	b := []byte(prefix)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
