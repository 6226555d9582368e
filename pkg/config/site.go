package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/models"
)

//go:embed default_site.yaml
var defaultSite []byte

// Site is everything that varies between landing page variants: palette,
// copy, catalog and outbound links.
type Site struct {
	Brand        Brand            `yaml:"brand"`
	Palette      Palette          `yaml:"palette"`
	Hero         Hero             `yaml:"hero"`
	Pains        Section          `yaml:"pains"`
	Solutions    Section          `yaml:"solutions"`
	Products     []models.Product `yaml:"products"`
	FreeLesson   FreeLesson       `yaml:"free_lesson"`
	Testimonials []Testimonial    `yaml:"testimonials"`
	FAQ          []FAQItem        `yaml:"faq"`
	Social       []SocialLink     `yaml:"social"`
	Contact      Contact          `yaml:"contact"`
	Legal        Legal            `yaml:"legal"`
	Countdown    CountdownConfig  `yaml:"countdown"`
	Submission   Submission       `yaml:"submission"`
	Analytics    Analytics        `yaml:"analytics"`
}

type Brand struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Favicon     string `yaml:"favicon"`
	OGImage     string `yaml:"og_image"`
}

// Palette maps color roles to CSS colors.
type Palette struct {
	Blue   string `yaml:"blue"`
	Yellow string `yaml:"yellow"`
	Green  string `yaml:"green"`
	Orange string `yaml:"orange"`
	Gray   string `yaml:"gray"`
	Black  string `yaml:"black"`
}

type Hero struct {
	Badge       string `yaml:"badge"`
	Headline    string `yaml:"headline"`
	Subheadline string `yaml:"subheadline"`
	FreeCTA     string `yaml:"free_cta"`
	ProductsCTA string `yaml:"products_cta"`
}

type Section struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Items    []string `yaml:"items"`
}

type FreeLesson struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	DocumentURL string `yaml:"document_url"`
}

type Testimonial struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	Text string `yaml:"text"`
}

// FAQItem carries its answer as markdown.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type SocialLink struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

type Contact struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// Legal holds the terms and privacy documents as markdown.
type Legal struct {
	Terms   string `yaml:"terms"`
	Privacy string `yaml:"privacy"`
}

type CountdownConfig struct {
	Initial string `yaml:"initial"`
	Restart string `yaml:"restart"`
	Mode    string `yaml:"mode"`
}

type Submission struct {
	Endpoint      string        `yaml:"endpoint"`
	RedirectDelay time.Duration `yaml:"redirect_delay"`
	FocusDelay    time.Duration `yaml:"focus_delay"`
	SendingText   string        `yaml:"sending_text"`
	FreeSuccess   string        `yaml:"free_success"`
	PaidSuccess   string        `yaml:"paid_success"`
	PaidNotice    string        `yaml:"paid_notice"`
}

type Analytics struct {
	GA4MeasurementID string `yaml:"ga4_measurement_id"`
	GTMContainerID   string `yaml:"gtm_container_id"`
}

const (
	defaultRedirectDelay = 1500 * time.Millisecond
	defaultFocusDelay    = 100 * time.Millisecond
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownKind    = errors.New("unknown submission kind")
)

// LoadSite reads the site document at path, or the embedded default when
// path is empty.
func LoadSite(path string) (*Site, error) {
	data := defaultSite
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading site config: %w", err)
		}
		data = b
	}
	return ParseSite(data)
}

// ParseSite decodes and validates a site document.
func ParseSite(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing site config: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseSiteJSON decodes the copy of the site document the page embeds for
// its script.
func ParseSiteJSON(data []byte) (*Site, error) {
	var s Site
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing site JSON: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Site) applyDefaults() {
	if s.Submission.RedirectDelay <= 0 {
		s.Submission.RedirectDelay = defaultRedirectDelay
	}
	if s.Submission.FocusDelay <= 0 {
		s.Submission.FocusDelay = defaultFocusDelay
	}
	if s.Countdown.Restart == "" {
		s.Countdown.Restart = countdown.DefaultRestart.String()
	}
}

// Validate reports the first problem that would break a submission or the
// countdown at runtime.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.FreeLesson.DocumentURL) == "" {
		return errors.New("site config: free_lesson.document_url is required")
	}
	if len(s.Products) == 0 {
		return errors.New("site config: at least one product is required")
	}
	seen := make(map[models.ProductKind]bool, len(s.Products))
	for i, p := range s.Products {
		if p.Kind == "" {
			return fmt.Errorf("site config: products[%d].kind is required", i)
		}
		if seen[p.Kind] {
			return fmt.Errorf("site config: duplicate product kind %q", p.Kind)
		}
		seen[p.Kind] = true
		if strings.TrimSpace(p.CheckoutURL) == "" {
			return fmt.Errorf("site config: product %q has no checkout_url", p.Kind)
		}
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.PriceLabel) == "" {
			return fmt.Errorf("site config: product %q needs a name and price_label", p.Kind)
		}
	}
	if _, err := s.CountdownInitial(); err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	if _, err := countdown.ParseState(s.Countdown.Restart); err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	if _, err := countdown.ParseMode(s.Countdown.Mode); err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	return nil
}

// CountdownInitial is the value the countdown shows on page load.
func (s *Site) CountdownInitial() (countdown.State, error) {
	return countdown.ParseState(s.Countdown.Initial)
}

// CountdownTimerConfig builds the timer settings. The site document must
// have passed Validate.
func (s *Site) CountdownTimerConfig() countdown.Config {
	initial, _ := countdown.ParseState(s.Countdown.Initial)
	restart, _ := countdown.ParseState(s.Countdown.Restart)
	mode, _ := countdown.ParseMode(s.Countdown.Mode)
	return countdown.Config{Initial: initial, Restart: restart, Mode: mode}
}

// Product looks up a catalog entry.
func (s *Site) Product(kind models.ProductKind) (models.Product, bool) {
	for _, p := range s.Products {
		if p.Kind == kind {
			return p, true
		}
	}
	return models.Product{}, false
}

// RedirectFor resolves where the visitor goes after submitting: the free
// lesson document, or the checkout link of the chosen product.
func (s *Site) RedirectFor(kind models.SubmissionKind, product models.ProductKind) (models.Redirect, error) {
	switch kind {
	case models.KindFree:
		return models.Redirect{Kind: models.RedirectDocument, URL: s.FreeLesson.DocumentURL}, nil
	case models.KindPaid:
		p, ok := s.Product(product)
		if !ok {
			return models.Redirect{}, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
		}
		return models.Redirect{Kind: models.RedirectCheckout, URL: p.CheckoutURL}, nil
	default:
		return models.Redirect{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ApplyEnv lets deployment settings override the site document.
func (s *Site) ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.AppScriptURL != "" {
		s.Submission.Endpoint = cfg.AppScriptURL
	}
	if cfg.GA4MeasurementID != "" {
		s.Analytics.GA4MeasurementID = cfg.GA4MeasurementID
	}
	if cfg.GTMContainerID != "" {
		s.Analytics.GTMContainerID = cfg.GTMContainerID
	}
}
