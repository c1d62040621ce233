package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
)

// Profile selects which listing pages one scrape run visits. Profiles
// are immutable once loaded.
type Profile struct {
	// BaseURL is the scheme+host prefix of every page URL and the
	// source stamp on extracted records.
	BaseURL string `json:"base_url"`
	// Categories are site-relative listing paths, visited in declared
	// order.
	Categories []string `json:"categories"`
	// PageSuffix is appended to the category path before the page
	// number, e.g. "all?page=".
	PageSuffix string `json:"page_suffix"`
}

// PageURL builds the listing URL for one (category, page) pair.
func (p Profile) PageURL(category string, page int) string {
	return p.BaseURL + category + "/" + p.PageSuffix + strconv.Itoa(page)
}

// Validate checks the profile for operator mistakes. These are fatal
// at call time, not runtime conditions to recover from.
func (p Profile) Validate() error {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base url must include a host")
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("profile has no categories")
	}
	return nil
}

// Sites is the profile registry keyed by site name.
type Sites map[string]Profile

// Get resolves a site name, failing immediately on unknown names.
func (s Sites) Get(name string) (Profile, error) {
	profile, ok := s[name]
	if !ok {
		return Profile{}, fmt.Errorf("site %q not found in configuration (known sites: %v)", name, s.Names())
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("site %q: %w", name, err)
	}
	return profile, nil
}

// Names lists the configured site names, sorted.
func (s Sites) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadSites reads a site configuration document. A missing file falls
// back to the built-in defaults; a malformed one is an error.
func LoadSites(path string) (Sites, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSites(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var sites Sites
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("parse sites file %s: %w", path, err)
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("sites file %s defines no sites", path)
	}
	return sites, nil
}

// DefaultSites returns the built-in profile set.
func DefaultSites() Sites {
	return Sites{
		"tesco": {
			BaseURL: "https://potravinydomov.itesco.sk",
			Categories: []string{
				"/groceries/sk-SK/shop/ovocie-a-zelenina",
				"/groceries/sk-SK/shop/maso-ryby-a-lahodky",
				"/groceries/sk-SK/shop/mliecne-vyrobky-a-vajcia",
				"/groceries/sk-SK/shop/pecivo",
				"/groceries/sk-SK/shop/trvanlive-potraviny",
			},
			PageSuffix: "all?page=",
		},
	}
}
