// Package yamlcatalog re-tunes a catalog from a YAML overrides file. Only keys
// the catalog already knows may appear; the closed variant sets never grow.
package yamlcatalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

var ErrUnknownKey = errors.New("unknown catalog key")

// Load reads path and applies it on top of a copy of base.
func Load(path string, base catalog.Catalog) (catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("reading catalog overrides: %w", err)
	}
	return Apply(base, data)
}

// Apply merges the overrides document into a copy of base. Map entries are
// merged field by field, so a partial entry keeps the base values it omits.
func Apply(base catalog.Catalog, data []byte) (catalog.Catalog, error) {
	out := base.Clone()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return catalog.Catalog{}, fmt.Errorf("parsing catalog overrides: %w", err)
	}
	if len(root.Content) == 0 {
		return out, out.Validate()
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return catalog.Catalog{}, fmt.Errorf("catalog overrides must be a mapping, line %d", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		var err error
		switch key.Value {
		case "tanks":
			err = merge(val, out.Tanks, catalog.TankType.Valid)
		case "boxes":
			err = merge(val, out.Boxes, catalog.Ingredient.Valid)
		case "peripherals":
			err = merge(val, out.Peripherals, catalog.PeripheralType.Valid)
		case "outposts":
			err = merge(val, out.Outposts, catalog.OutpostType.Valid)
		case "dna":
			err = merge(val, out.DNA, catalog.DNAOption.Valid)
		case "fluid_routes":
			err = merge(val, out.FluidRoutes, catalog.Ingredient.Valid)
		case "tuning":
			err = decodeStrict(val, &out.Tuning)
		default:
			err = fmt.Errorf("%w: %q (line %d)", ErrUnknownKey, key.Value, key.Line)
		}
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("catalog %s: %w", key.Value, err)
		}
	}
	if err := out.Validate(); err != nil {
		return catalog.Catalog{}, err
	}
	return out, nil
}

func merge[K ~string, V any](node *yaml.Node, dst map[K]V, valid func(K) bool) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, line %d", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := K(node.Content[i].Value)
		if !valid(k) {
			return fmt.Errorf("%w: %q (line %d)", ErrUnknownKey, k, node.Content[i].Line)
		}
		v := dst[k]
		if err := decodeStrict(node.Content[i+1], &v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		dst[k] = v
	}
	return nil
}

// decodeStrict decodes node into v, rejecting fields v does not declare.
func decodeStrict(node *yaml.Node, v any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}
