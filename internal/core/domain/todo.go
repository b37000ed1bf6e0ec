package domain

import (
	"time"
)

// RawInput is an unvalidated creation request as it arrives from a form or a JSON body.
type RawInput map[string]any

type TodoInput struct {
	Title       string `validate:"required"`
	Category    string `validate:"required"`
	Description *string
	DueDate     *time.Time
}

type TodoRecord struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type TodoWire struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	DueDate     *string `json:"dueDate,omitempty"`
}

func (w TodoWire) ToRecord() TodoRecord {
	record := TodoRecord{
		ID:          w.ID,
		Title:       w.Title,
		Category:    w.Category,
		Description: w.Description,
	}

	if createdAt, ok := ParseISO(w.CreatedAt); ok {
		record.CreatedAt = createdAt
	}

	if w.DueDate != nil {
		if dueDate, ok := ParseISO(*w.DueDate); ok {
			record.DueDate = &dueDate
		}
	}

	return record
}

func (r TodoRecord) ToWire() TodoWire {
	wire := TodoWire{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	if r.DueDate != nil {
		dueDate := r.DueDate.UTC().Format(time.RFC3339Nano)
		wire.DueDate = &dueDate
	}

	return wire
}

func (r TodoRecord) IsOverdue(now time.Time) bool {
	return r.DueDate != nil && r.DueDate.Before(now)
}

func (r TodoRecord) DescriptionOrEmpty() string {
	if r.Description == nil {
		return ""
	}

	return *r.Description
}

func RecordsFromWire(wires []TodoWire) []TodoRecord {
	records := make([]TodoRecord, 0, len(wires))

	for _, w := range wires {
		records = append(records, w.ToRecord())
	}

	return records
}

// TodoView is the presenter state of one browser session. Items is a disposable
// copy of backend state and is replaced wholesale on every successful refresh.
// Revision is the token of the last list response applied to the view.
type TodoView struct {
	Loading  bool         `json:"loading"`
	Error    string       `json:"error,omitempty"`
	Items    []TodoRecord `json:"items"`
	Revision uint64       `json:"revision,omitempty"`
}

func (v TodoView) HasError() bool {
	return v.Error != ""
}

func (v TodoView) IsEmpty() bool {
	return !v.Loading && !v.HasError() && len(v.Items) == 0
}

// FieldErrors maps a field name to its validation messages, in order.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// First keeps only the leading message of every field.
func (fe FieldErrors) First() map[string]string {
	first := make(map[string]string, len(fe))

	for field, messages := range fe {
		if len(messages) > 0 {
			first[field] = messages[0]
		}
	}

	return first
}

type CreateResult struct {
	FieldErrors FieldErrors
	Success     bool
}
