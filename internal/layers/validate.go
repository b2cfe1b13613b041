package layers

import (
	"strings"

	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
)

// validateContainers confirms that every declared container lives under one
// of the project's root packages, and that every required layer module
// exists in the graph under every container.
func validateContainers(g *graph.Graph, c Contract, rootPackages []string) error {
	for _, container := range c.Containers {
		if !rootPackageKnown(container, rootPackages) {
			if len(rootPackages) == 1 {
				root := rootPackages[0]
				return lerrors.Newf(lerrors.ContainerInvalid,
					"Invalid container '%s': a container must either be a subpackage of %s, or %s itself.",
					container, root, root)
			}
			return lerrors.Newf(lerrors.ContainerInvalid,
				"Invalid container '%s': a container must either be a root package, or a subpackage of one of them. (The root packages are: %s.)",
				container, strings.Join(rootPackages, ", "))
		}

		for _, layer := range c.Layers {
			if layer.Optional {
				continue
			}
			name := graph.Join(container, layer.Name)
			if !g.Contains(name) {
				return lerrors.Newf(lerrors.LayerMissing,
					"Missing layer in container '%s': module %s does not exist.", container, name)
			}
		}
	}
	return nil
}

// validateContainerlessLayers confirms every required bare layer name exists
// in the graph.
func validateContainerlessLayers(g *graph.Graph, c Contract) error {
	for _, layer := range c.Layers {
		if layer.Optional {
			continue
		}
		if !g.Contains(layer.Name) {
			return lerrors.Newf(lerrors.LayerMissing,
				"Missing layer '%s': module %s does not exist.", layer.Name, layer.Name)
		}
	}
	return nil
}

// rootPackageKnown reports whether the container's root package is one of
// the declared root packages. A container equal to a root package and a
// container nested below one both pass.
func rootPackageKnown(container string, rootPackages []string) bool {
	root := graph.Root(container)
	for _, rp := range rootPackages {
		if root == rp {
			return true
		}
	}
	return false
}
