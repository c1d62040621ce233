package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPageURL(t *testing.T) {
	p := Profile{
		BaseURL:    "https://potravinydomov.itesco.sk",
		Categories: []string{"/groceries/sk-SK/shop/pecivo"},
		PageSuffix: "all?page=",
	}
	got := p.PageURL("/groceries/sk-SK/shop/pecivo", 3)
	want := "https://potravinydomov.itesco.sk/groceries/sk-SK/shop/pecivo/all?page=3"
	if got != want {
		t.Errorf("PageURL = %q, want %q", got, want)
	}
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{BaseURL: "https://shop.example", Categories: []string{"/a"}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}

	cases := []struct {
		name    string
		profile Profile
	}{
		{"bad scheme", Profile{BaseURL: "ftp://shop.example", Categories: []string{"/a"}}},
		{"no host", Profile{BaseURL: "https://", Categories: []string{"/a"}}},
		{"no categories", Profile{BaseURL: "https://shop.example"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.profile.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSitesGetUnknown(t *testing.T) {
	sites := DefaultSites()
	_, err := sites.Get("lidl")
	if err == nil {
		t.Fatal("expected error for unknown site")
	}
	if !strings.Contains(err.Error(), "tesco") {
		t.Errorf("error should list known sites, got %v", err)
	}
}

func TestSitesGetValid(t *testing.T) {
	profile, err := DefaultSites().Get("tesco")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(profile.Categories) == 0 {
		t.Error("default profile has no categories")
	}
}

func TestLoadSitesMissingFileFallsBack(t *testing.T) {
	sites, err := LoadSites(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadSites: %v", err)
	}
	if !reflect.DeepEqual(sites, DefaultSites()) {
		t.Error("missing file should yield built-in defaults")
	}
}

func TestLoadSitesFromFile(t *testing.T) {
	doc := `{
  "kaufland": {
    "base_url": "https://predajne.kaufland.sk",
    "categories": ["/ponuka"],
    "page_suffix": "?page="
  }
}`
	path := filepath.Join(t.TempDir(), "sites.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	sites, err := LoadSites(path)
	if err != nil {
		t.Fatalf("LoadSites: %v", err)
	}
	profile, err := sites.Get("kaufland")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile.PageURL("/ponuka", 2) != "https://predajne.kaufland.sk/ponuka/?page=2" {
		t.Errorf("page url = %q", profile.PageURL("/ponuka", 2))
	}
}

func TestLoadSitesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSites(path); err == nil {
		t.Error("expected parse error")
	}
}
