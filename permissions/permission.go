package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var ErrDuplicateEndpoint = errors.New("endpoint declared twice")

// Permission lists the roles allowed on one chi route pattern. Skip makes the
// route public.
type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint. An endpoint without
// roles is open to any authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Parse decodes a permissions document and indexes it by method and path.
func Parse(raw []byte) (*PermissionData, error) {
	data := &PermissionData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.byRoute = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, ok := data.byRoute[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEndpoint, key)
		}

		data.byRoute[key] = endpoint
	}

	return data, nil
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r == nil {
		return Permission{}
	}

	return r.byRoute[routeKey(method, path)]
}

// Get loads the embedded permissions, or nil when they are malformed. The
// auth middleware refuses every protected route while it holds nil.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("loaded embedded permissions")

	return data
}
