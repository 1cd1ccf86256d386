package collection

import (
	"github.com/go-json-experiment/json"
)

// Plugin identity reported in the manifest.
const (
	PluginName     = "plugin-go-collection"
	PluginVersion  = "1.0.0"
	pluginLanguage = "go"
)

// ManifestAction describes one action in the plugin manifest. This plugin
// defines none; the type exists so the manifest renders "actions":[].
type ManifestAction struct {
	Name        string   `json:"name"`
	InputTypes  []string `json:"inputTypes"`
	Description string   `json:"description"`
}

// ManifestQualifier describes one qualifier in the plugin manifest.
type ManifestQualifier struct {
	Name        string   `json:"name"`
	InputTypes  []string `json:"inputTypes"`
	Description string   `json:"description"`
}

// Manifest is the plugin metadata consumed by the host for discovery.
type Manifest struct {
	Name       string              `json:"name"`
	Version    string              `json:"version"`
	Language   string              `json:"language"`
	Actions    []ManifestAction    `json:"actions"`
	Qualifiers []ManifestQualifier `json:"qualifiers"`
}

// BuildManifest assembles the manifest from a registry, qualifiers in
// registration order.
func BuildManifest(r *Registry) Manifest {
	quals := r.Qualifiers()
	mq := make([]ManifestQualifier, len(quals))
	for i, q := range quals {
		mq[i] = ManifestQualifier{
			Name:        q.Name,
			InputTypes:  q.InputTypes,
			Description: q.Description,
		}
	}
	return Manifest{
		Name:       PluginName,
		Version:    PluginVersion,
		Language:   pluginLanguage,
		Actions:    []ManifestAction{},
		Qualifiers: mq,
	}
}

// PluginInfo returns the manifest for the default registry as JSON.
func PluginInfo() ([]byte, error) {
	return json.Marshal(BuildManifest(DefaultRegistry))
}
