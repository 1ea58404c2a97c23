package http

import (
	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
)

func toSessionResponse(s domain.VerificationSession) agesdk.SessionResponse {
	return agesdk.SessionResponse{
		SessionID:   s.ID,
		Surname:     s.Surname,
		OrderNumber: s.OrderNumber,
		Postcode:    s.Postcode,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
	}
}

func toVerifyResponse(t domain.VerificationToken) agesdk.VerifyResponse {
	return agesdk.VerifyResponse{
		Verified:           t.Verified,
		UID:                t.UID,
		AssuranceLevel:     t.AssuranceLevel,
		Country:            t.Country,
		CountrySubdivision: t.CountrySubdivision,
		AgeThreshold:       t.AgeThreshold,
		ExpiresAt:          t.ExpiresAt,
		ExpiresIn:          t.ExpiresIn,
		SignatureChecked:   t.SignatureChecked,
	}
}

func toPersistResult(r domain.PersistResult) agesdk.PersistResult {
	return agesdk.PersistResult{
		Created:     r.Created,
		Existed:     r.Existed,
		Updated:     r.Updated,
		Target:      r.Target,
		Error:       r.Error,
		Outcome:     string(r.Outcome),
		CustomerGID: r.CustomerGID,
	}
}

func toEvidence(e domain.VerificationEvidence) agesdk.Evidence {
	return agesdk.Evidence{
		Verified:           e.Verified,
		UID:                e.UID,
		Token:              e.Token,
		AssuranceLevel:     e.AssuranceLevel,
		AgeThreshold:       e.AgeThreshold,
		Country:            e.Country,
		CountrySubdivision: e.CountrySubdivision,
		ExpiresIn:          e.ExpiresIn,
		VerificationMethod: e.VerificationMethod,
		VerificationLogs:   e.VerificationLogs,
		Outcome:            e.Outcome,
		Timestamp:          e.Timestamp,
		Source:             e.Source,
		OrderNumber:        e.OrderNumber,
		CustomerGID:        e.CustomerGID,
		RetentionExpiry:    e.RetentionExpiry,
	}
}

func toAttempt(a domain.Attempt) agesdk.Attempt {
	return agesdk.Attempt{
		ID:               a.ID,
		CustomerGID:      a.CustomerGID,
		OrderNumber:      a.OrderNumber,
		UID:              a.UID,
		Outcome:          string(a.Outcome),
		Source:           a.Source,
		TokenFingerprint: a.TokenFingerprint,
		HasSealedToken:   len(a.SealedToken) > 0,
		CreatedAt:        a.CreatedAt,
	}
}

func toOrder(o shopify.Order) agesdk.Order {
	out := agesdk.Order{
		ID:               o.ID,
		Name:             o.Name,
		Email:            o.Email,
		ConfirmationCode: o.ConfirmationCode,
	}
	if o.Customer != nil {
		out.Customer = &agesdk.Customer{
			ID:        o.Customer.ID,
			Email:     o.Customer.Email,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
		}
	}
	if o.ShippingAddress != nil {
		out.ShippingAddress = &agesdk.Address{Zip: o.ShippingAddress.Zip}
	}
	if o.BillingAddress != nil {
		out.BillingAddress = &agesdk.Address{Zip: o.BillingAddress.Zip}
	}
	return out
}
