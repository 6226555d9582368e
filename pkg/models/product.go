package models

// ProductKind identifies a priced item of the catalog, e.g. "serie1" or "kit3"
type ProductKind string

// Product is one priced card of the landing page
type Product struct {
	Kind        ProductKind `yaml:"kind" json:"kind"`
	Name        string      `yaml:"name" json:"name"`
	PriceLabel  string      `yaml:"price_label" json:"price_label"`
	Price       float64     `yaml:"price" json:"price"`
	Description string      `yaml:"description" json:"description"`
	Features    []string    `yaml:"features" json:"features"`
	CheckoutURL string      `yaml:"checkout_url" json:"checkout_url"`
	Highlighted bool        `yaml:"highlighted" json:"highlighted"`
}

// SelectedProduct is what the paid modal is currently selling. It is set when
// the visitor picks a card and cleared when the modal closes.
type SelectedProduct struct {
	Kind        ProductKind
	DisplayName string
	PriceLabel  string
	Price       float64
}

// Selection builds the SelectedProduct shown by the paid modal.
func (p Product) Selection() SelectedProduct {
	return SelectedProduct{
		Kind:        p.Kind,
		DisplayName: p.Name,
		PriceLabel:  p.PriceLabel,
		Price:       p.Price,
	}
}

// RedirectKind distinguishes the two outbound destinations
type RedirectKind string

const (
	RedirectDocument RedirectKind = "document"
	RedirectCheckout RedirectKind = "checkout"
)

// Redirect is the external URL opened after a submission
type Redirect struct {
	Kind RedirectKind
	URL  string
}
