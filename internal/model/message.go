package model

// Message is one contact form submission. The canonical list is kept newest
// first; ids are immutable once assigned.
type Message struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
	Service   string `json:"service" db:"service"`
	Message   string `json:"message" db:"message"`
	Timestamp string `json:"timestamp" db:"timestamp"`
	Read      bool   `json:"read" db:"read"`
}

// MessageDraft is the public contact form payload.
type MessageDraft struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" validate:"required"`
}
