/*
Package agesdk provides a client SDK for the age verification service.

# Overview

The service sits between the storefront, the assurance provider and the
Shopify Admin API. Public endpoints create verification sessions, check
assurance tokens, accept provider webhooks and persist evidence onto customer
records. Admin endpoints look up orders, sessions and stored evidence and
require a bearer token.

# Clients

Create a Client for the public endpoints:

	client := agesdk.NewClient("https://verify.example.com")

	sess, err := client.CreateSession(ctx, agesdk.CreateSessionRequest{
		Surname:     "Smith",
		OrderNumber: "#1001",
		Postcode:    "AB12 3CD",
	})

	result, err := client.Verify(ctx, token)

	persisted, err := client.PersistEvidence(ctx, agesdk.PersistEvidenceRequest{
		SessionID: sess.SessionID,
		Token:     token,
	})

Use an AdminClient for lookups:

	admin := client.Admin(os.Getenv("AGEVERIF_ADMIN_TOKEN"))

	order, err := admin.FindOrderByName(ctx, "#1001", "ULETWJUNV")
	evidence, err := admin.GetCustomerEvidence(ctx, "7")

# Errors

Non-2xx responses are returned as *APIError. Compare against the predefined
errors with errors.Is, which matches on status code and error code:

	if errors.Is(err, agesdk.ErrNotFound) {
		// no such order
	}
*/
package agesdk
