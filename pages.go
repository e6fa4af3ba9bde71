package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed slides.yaml
var defaultSlidesYAML string

// SlideDeckFile is the on-disk shape of the slide content file
type SlideDeckFile struct {
	Slides     []SlideConfig `yaml:"slides"`
	Form       SlideConfig   `yaml:"form"`
	Calculator SlideConfig   `yaml:"calculator"`
}

// SlideConfig describes one page in the slide file
type SlideConfig struct {
	Image    string `yaml:"image"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Accent   string `yaml:"accent"`
	Body     string `yaml:"body"`
}

func (sc SlideConfig) page(kind PageKind) Page {
	return Page{
		Image:    sc.Image,
		Title:    sc.Title,
		Subtitle: sc.Subtitle,
		Accent:   sc.Accent,
		Kind:     kind,
		Body:     sc.Body,
	}
}

// LoadSlides reads slide content from path, or the built-in slides when
// path is empty.
func LoadSlides(path string) (*SlideDeckFile, error) {
	data := []byte(defaultSlidesYAML)
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	var sf SlideDeckFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing slides: %w", err)
	}
	if sf.Form.Title == "" || sf.Calculator.Title == "" {
		return nil, fmt.Errorf("slides: form and calculator pages need a title")
	}
	return &sf, nil
}

// BuildPages assembles the deck: every static slide in file order, then the
// form page, then the calculator page.
func BuildPages(sf *SlideDeckFile) []Page {
	pages := make([]Page, 0, len(sf.Slides)+2)
	for _, s := range sf.Slides {
		pages = append(pages, s.page(PageStatic))
	}
	pages = append(pages, sf.Form.page(PageForm))
	pages = append(pages, sf.Calculator.page(PageCalculator))
	return pages
}

// CalculatorSubtitle is the calculator page subtitle for the current record
func CalculatorSubtitle(p Page, record BusinessRecord) string {
	if record.RestaurantName != "" {
		return record.RestaurantName
	}
	return p.Subtitle
}
