package view

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuItem is one sidebar entry as written in navigation.yaml.
type MenuItem struct {
	Label    string     `yaml:"label"`
	Path     string     `yaml:"path"`
	Icon     string     `yaml:"icon"`
	Exact    bool       `yaml:"exact"`
	Children []MenuItem `yaml:"children"`
}

// MenuEntry is a MenuItem resolved against the current request.
type MenuEntry struct {
	Label    string
	Href     string
	Icon     string
	Active   bool
	Open     bool
	Children []MenuEntry
}

// Navigation is the parsed sidebar.
type Navigation struct {
	items []MenuItem
}

// ParseNavigation decodes the YAML menu definition.
func ParseNavigation(data []byte) (*Navigation, error) {
	var items []MenuItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("view: parse navigation: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("view: navigation is empty")
	}
	for _, item := range items {
		if item.Path == "" && len(item.Children) == 0 {
			return nil, fmt.Errorf("view: menu %q has neither path nor children", item.Label)
		}
	}
	return &Navigation{items: items}, nil
}

// Resolve marks active entries for currentPath, a path without the base
// prefix, and prefixes every href with basePath.
func (n *Navigation) Resolve(currentPath, basePath string) []MenuEntry {
	if n == nil {
		return nil
	}
	out := make([]MenuEntry, 0, len(n.items))
	for _, item := range n.items {
		out = append(out, resolve(item, currentPath, basePath))
	}
	return out
}

func resolve(item MenuItem, currentPath, basePath string) MenuEntry {
	entry := MenuEntry{Label: item.Label, Icon: item.Icon}
	if item.Path != "" {
		entry.Href = basePath + item.Path
		entry.Active = IsActivePath(currentPath, item.Path, item.Exact)
	}
	for _, child := range item.Children {
		resolved := resolve(child, currentPath, basePath)
		if resolved.Active || resolved.Open {
			entry.Open = true
		}
		entry.Children = append(entry.Children, resolved)
	}
	return entry
}

// IsActivePath reports whether a menu item for itemPath is active at
// current. Exact items match only themselves; others also match their
// sub-paths, so "/admin/produk" is active at "/admin/produk/3" but not at
// "/admin/produk-lain".
func IsActivePath(current, itemPath string, exact bool) bool {
	current = strings.TrimRight(current, "/")
	itemPath = strings.TrimRight(itemPath, "/")
	if current == itemPath {
		return true
	}
	if exact {
		return false
	}
	return strings.HasPrefix(current, itemPath+"/")
}
