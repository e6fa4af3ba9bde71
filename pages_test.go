package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInSlides(t *testing.T) {
	sf, err := LoadSlides("")
	require.NoError(t, err)
	require.Len(t, sf.Slides, 12)

	pages := BuildPages(sf)
	require.Len(t, pages, 14)
	for _, p := range pages[:12] {
		assert.Equal(t, PageStatic, p.Kind)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Image)
		assert.False(t, p.IsInteractive())
	}

	form, calc := pages[12], pages[13]
	assert.Equal(t, PageForm, form.Kind)
	assert.Equal(t, "Add Restaurant Data", form.Title)
	assert.Equal(t, PageCalculator, calc.Kind)
	assert.Equal(t, "Your Savings Calculator", calc.Title)
	assert.True(t, form.IsInteractive())
	assert.True(t, calc.IsInteractive())
}

func TestLoadSlidesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.yaml")
	content := `
slides:
  - image: a.jpg
    title: Welcome
    accent: "linear-gradient(#000, #fff)"
    body: "<p>Hi</p>"
form:
  title: Your Details
calculator:
  title: Your Savings
  subtitle: Results
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sf, err := LoadSlides(path)
	require.NoError(t, err)
	pages := BuildPages(sf)
	require.Len(t, pages, 3)
	assert.Equal(t, Page{Image: "a.jpg", Title: "Welcome", Accent: "linear-gradient(#000, #fff)", Kind: PageStatic, Body: "<p>Hi</p>"}, pages[0])
	assert.Equal(t, "Your Details", pages[1].Title)
	assert.Equal(t, "Results", pages[2].Subtitle)
}

func TestLoadSlidesErrors(t *testing.T) {
	_, err := LoadSlides(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "slides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slides: []\n"), 0644))
	_, err = LoadSlides(path)
	assert.Error(t, err, "form and calculator pages are required")

	require.NoError(t, os.WriteFile(path, []byte("slides: [\n"), 0644))
	_, err = LoadSlides(path)
	assert.Error(t, err)
}

func TestCalculatorSubtitle(t *testing.T) {
	p := Page{Kind: PageCalculator, Subtitle: "Results"}
	assert.Equal(t, "Results", CalculatorSubtitle(p, BusinessRecord{}))
	assert.Equal(t, "Spice Garden", CalculatorSubtitle(p, BusinessRecord{RestaurantName: "Spice Garden"}))
}
