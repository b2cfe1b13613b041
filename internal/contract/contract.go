// Package contract loads layer contract declarations from disk.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	lerrors "layerlint/internal/errors"
	"layerlint/internal/layers"
)

// DefaultFile is the default contract declaration filename.
const DefaultFile = "CONTRACTS.toml"

// Spec is the raw on-disk form of one contract declaration.
type Spec struct {
	// Name is the human-readable name of the contract
	Name string `toml:"name" yaml:"name"`

	// Type selects the contract kind; "layers" is the only supported type
	// and may be omitted.
	Type string `toml:"type,omitempty" yaml:"type,omitempty"`

	// Layers is the ordered list of layer tokens, highest first. A token
	// wrapped in parentheses marks the layer optional.
	Layers []string `toml:"layers" yaml:"layers"`

	// Containers are the parent packages of the layers (optional)
	Containers []string `toml:"containers,omitempty" yaml:"containers,omitempty"`

	// IgnoreImports lists "importer -> imported" expressions whose edges
	// are removed before analysis (optional)
	IgnoreImports []string `toml:"ignore_imports,omitempty" yaml:"ignore_imports,omitempty"`
}

// File is the root structure of a contract declaration file.
type File struct {
	// Version is the schema version
	Version int `toml:"version" yaml:"version"`

	// Contracts is the list of declared contracts
	Contracts []Spec `toml:"contract" yaml:"contracts"`
}

// Load reads a contract declaration file and converts it to checkable
// contracts. TOML and YAML files are supported, dispatched on extension.
func Load(path string) ([]layers.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ConfigInvalid,
			fmt.Sprintf("failed to read contract file %s", path), err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, lerrors.Wrap(lerrors.ConfigInvalid,
				fmt.Sprintf("failed to parse contract file %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, lerrors.Wrap(lerrors.ConfigInvalid,
				fmt.Sprintf("failed to parse contract file %s", path), err)
		}
	default:
		return nil, lerrors.Newf(lerrors.ConfigInvalid,
			"unsupported contract file format %q (expected .toml, .yaml or .yml)", filepath.Ext(path))
	}

	if len(file.Contracts) == 0 {
		return nil, lerrors.Newf(lerrors.ConfigInvalid, "no contracts declared in %s", path)
	}

	contracts := make([]layers.Contract, 0, len(file.Contracts))
	for i, spec := range file.Contracts {
		c, err := spec.toContract(i)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// toContract validates one spec and parses its fields into domain values.
func (s Spec) toContract(index int) (layers.Contract, error) {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("contract %d", index+1)
	}

	if s.Type != "" && s.Type != "layers" {
		return layers.Contract{}, lerrors.Newf(lerrors.ConfigInvalid,
			"contract '%s': unknown type %q (only \"layers\" is supported)", name, s.Type)
	}
	if len(s.Layers) == 0 {
		return layers.Contract{}, lerrors.Newf(lerrors.ConfigInvalid,
			"contract '%s': at least one layer is required", name)
	}

	c := layers.Contract{
		Name:       name,
		Layers:     layers.ParseLayers(s.Layers),
		Containers: s.Containers,
	}
	for _, expr := range s.IgnoreImports {
		di, err := layers.ParseDirectImport(expr)
		if err != nil {
			return layers.Contract{}, err
		}
		c.IgnoreImports = append(c.IgnoreImports, di)
	}
	return c, nil
}
