// Package hrdoc holds HR document metadata (contracts, certificates, payslips).
package hrdoc

import (
	"time"

	"cloud.google.com/go/civil"
)

// Status is the review state of an uploaded document.
type Status string

// Document status values.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Document is the metadata of one uploaded HR document. File contents live elsewhere.
type Document struct {
	ID         string     `json:"id" yaml:"id" validate:"required,max=64"`
	Title      string     `json:"title" yaml:"title" validate:"required,max=200"`
	Category   string     `json:"category,omitempty" yaml:"category"`
	Status     Status     `json:"status,omitempty" yaml:"status" validate:"omitempty,oneof=pending approved rejected expired"`
	OwnerID    string     `json:"ownerId,omitempty" yaml:"ownerId"`
	OwnerName  string     `json:"ownerName,omitempty" yaml:"ownerName"`
	MimeType   string     `json:"mimeType,omitempty" yaml:"mimeType"`
	SizeBytes  int64      `json:"sizeBytes" yaml:"sizeBytes" validate:"gte=0"`
	UploadedAt time.Time  `json:"uploadedAt" yaml:"uploadedAt"`
	ExpiresOn  civil.Date `json:"expiresOn,omitzero" yaml:"expiresOn"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags" validate:"dive,max=50"`
}

// IsExpired reports whether the document has an expiry date on or before today,
// or was explicitly marked expired.
func (d *Document) IsExpired(today civil.Date) bool {
	if d.Status == StatusExpired {
		return true
	}
	if d.ExpiresOn.IsZero() {
		return false
	}
	return !d.ExpiresOn.After(today)
}
