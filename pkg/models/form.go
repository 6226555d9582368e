package models

// Field names a lead form input. The values match the wire names used by
// the spreadsheet endpoint.
type Field string

const (
	FieldName  Field = "nome"
	FieldEmail Field = "email"
	FieldPhone Field = "whatsapp"
)

// Represents the data typed into the free or paid modal form
type LeadFormData struct {
	Name  string `json:"nome" form:"nome" validate:"trimmin=2"`
	Email string `json:"email" form:"email" validate:"required,looseemail"`
	Phone string `json:"whatsapp" form:"whatsapp" validate:"omitempty,brphone"`
}

// FormErrors maps a field to the message shown under its input
type FormErrors map[Field]string

// Has reports whether the field currently carries an error.
func (e FormErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// SubmissionKind tells the spreadsheet which flow produced the row
type SubmissionKind string

const (
	KindFree SubmissionKind = "gratuito"
	KindPaid SubmissionKind = "pago"
)

// Valid reports whether k is one of the known submission kinds.
func (k SubmissionKind) Valid() bool {
	return k == KindFree || k == KindPaid
}

// LeadPayload is the row sent to the spreadsheet endpoint
type LeadPayload struct {
	Name    string         `json:"nome"`
	Email   string         `json:"email"`
	Phone   string         `json:"whatsapp"`
	Kind    SubmissionKind `json:"tipo"`
	Product string         `json:"produto"`
	Price   string         `json:"valor"`
	// ProductID is the catalog key. It is not part of the spreadsheet row.
	ProductID ProductKind `json:"-"`
}

// LeadRequest is the body accepted by the lead endpoints
type LeadRequest struct {
	LeadFormData
	Kind    SubmissionKind `json:"tipo" form:"tipo"`
	Product string         `json:"produto" form:"produto"`
}

// LeadResponse is returned to the page after a lead is accepted
type LeadResponse struct {
	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	RedirectURL  string     `json:"redirect_url,omitempty"`
	SubmissionID string     `json:"submission_id,omitempty"`
	Errors       FormErrors `json:"errors,omitempty"`
}

// PhoneNotProvided fills the whatsapp column when the optional field is
// left blank.
const PhoneNotProvided = "Não informado"

// NewLeadPayload builds the spreadsheet row. product is nil for the free
// flow.
func NewLeadPayload(values LeadFormData, kind SubmissionKind, product *SelectedProduct) LeadPayload {
	p := LeadPayload{
		Name:  values.Name,
		Email: values.Email,
		Phone: values.Phone,
		Kind:  kind,
	}
	if p.Phone == "" {
		p.Phone = PhoneNotProvided
	}
	if product != nil {
		p.Product = product.DisplayName
		p.ProductID = product.Kind
		p.Price = product.PriceLabel
	}
	return p
}
