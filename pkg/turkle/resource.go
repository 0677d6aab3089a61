package turkle

import (
	"fmt"
	"strings"
)

// Resource is the closed set of resource families the CLI dispatches on.
type Resource string

const (
	ResourceUsers       Resource = "users"
	ResourceGroups      Resource = "groups"
	ResourceProjects    Resource = "projects"
	ResourceBatches     Resource = "batches"
	ResourcePermissions Resource = "permissions"
)

// Resources returns every resource in display order.
func Resources() []Resource {
	return []Resource{
		ResourceUsers,
		ResourceGroups,
		ResourceProjects,
		ResourceBatches,
		ResourcePermissions,
	}
}

// ParseResource maps a command name to a Resource.
func ParseResource(name string) (Resource, error) {
	candidate := Resource(strings.ToLower(strings.TrimSpace(name)))
	for _, resource := range Resources() {
		if resource == candidate {
			return resource, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownResource, name)
}

// Singular returns the singular noun, used in messages.
func (r Resource) Singular() string {
	if r == ResourceBatches {
		return "batch"
	}

	return strings.TrimSuffix(string(r), "s")
}
