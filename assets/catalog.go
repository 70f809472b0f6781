package assets

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/reusee/stagecoach/collisions"
	"gopkg.in/yaml.v3"
)

var ErrUnknownCostume = errors.New("unknown costume")

// Catalog maps costume names to their pixel dimensions.
type Catalog map[string]collisions.Drawable

type manifest struct {
	Costumes map[string]collisions.Drawable `yaml:"costumes"`
}

// Parse reads a manifest like
//
//	costumes:
//	  ball: {width: 40, height: 40, centerX: 20, centerY: 20}
//
// A costume without a centre is centred on its middle.
func Parse(content []byte) (Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("parse asset manifest: %w", err)
	}
	catalog := make(Catalog, len(m.Costumes))
	for name, drawable := range m.Costumes {
		if drawable.Width < 0 || drawable.Height < 0 {
			return nil, fmt.Errorf("costume %s: negative size", name)
		}
		drawable.Handle = name
		if drawable.CenterX == 0 && drawable.CenterY == 0 {
			drawable.CenterX = drawable.Width / 2
			drawable.CenterY = drawable.Height / 2
		}
		catalog[name] = drawable
	}
	return catalog, nil
}

func Load(path string) (Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

func (c Catalog) Drawable(name string) (collisions.Drawable, error) {
	drawable, ok := c[name]
	if !ok {
		return collisions.Drawable{}, fmt.Errorf("%w: %s", ErrUnknownCostume, name)
	}
	return drawable, nil
}

func (c Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c))
}
