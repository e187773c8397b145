package model

import "time"

type DocumentKind string

const (
	DocumentIdentityProof   DocumentKind = "identity_proof"
	DocumentVoidCheque      DocumentKind = "void_cheque"
	DocumentInsuranceProof  DocumentKind = "insurance_proof"
	DocumentCITQCertificate DocumentKind = "citq_certificate"
	DocumentTaxConfirmation DocumentKind = "tax_confirmation"
)

type ProfileDocuments struct {
	IdentityProof   *string `json:"identityProof,omitempty" validate:"omitempty,url"`
	VoidCheque      *string `json:"voidCheque,omitempty" validate:"omitempty,url"`
	InsuranceProof  *string `json:"insuranceProof,omitempty" validate:"omitempty,url"`
	CITQCertificate *string `json:"citqCertificate,omitempty" validate:"omitempty,url"`
	TaxConfirmation *string `json:"taxConfirmation,omitempty" validate:"omitempty,url"`
}

type UserProfile struct {
	UserID         string           `json:"userId"`
	FullName       string           `json:"fullName" validate:"max=100"`
	Email          string           `json:"email" validate:"omitempty,email"`
	PhoneNumber    string           `json:"phoneNumber" validate:"max=30"`
	BusinessNumber string           `json:"businessNumber" validate:"max=50"`
	Documents      ProfileDocuments `json:"documents"`
	TaxConfirmed   bool             `json:"taxConfirmed"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// SetDocument stores url under the given kind and reports whether the kind is known.
func (d *ProfileDocuments) SetDocument(kind DocumentKind, url string) bool {
	switch kind {
	case DocumentIdentityProof:
		d.IdentityProof = &url
	case DocumentVoidCheque:
		d.VoidCheque = &url
	case DocumentInsuranceProof:
		d.InsuranceProof = &url
	case DocumentCITQCertificate:
		d.CITQCertificate = &url
	case DocumentTaxConfirmation:
		d.TaxConfirmation = &url
	default:
		return false
	}
	return true
}

// Document returns the URL stored under kind, or nil.
func (d *ProfileDocuments) Document(kind DocumentKind) *string {
	switch kind {
	case DocumentIdentityProof:
		return d.IdentityProof
	case DocumentVoidCheque:
		return d.VoidCheque
	case DocumentInsuranceProof:
		return d.InsuranceProof
	case DocumentCITQCertificate:
		return d.CITQCertificate
	case DocumentTaxConfirmation:
		return d.TaxConfirmation
	}
	return nil
}
