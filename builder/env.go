package builder

import (
	"fmt"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Env map[string]string

// Environment returns the settings that may be supplied through the process
// environment instead of flags.
func Environment() Env {
	return map[string]string{
		"SVDLOAD_TARGETS":   getenv("SVDLOAD_TARGETS", ""),
		"SVDLOAD_NAMESPACE": getenv("SVDLOAD_NAMESPACE", DefaultNamespace),
		"SVDLOAD_EMIT":      getenv("SVDLOAD_EMIT", ""),
	}
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

// List returns KEY=value pairs sorted by key.
func (e Env) List() []string {
	keys := maps.Keys(e)
	slices.Sort(keys)

	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result, fmt.Sprintf("%s=%s", key, e[key]))
	}
	return result
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
