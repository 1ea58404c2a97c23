// Package shopify is a small client for the parts of the Shopify Admin
// GraphQL API the age verification flow touches: order and customer lookup,
// customer creation, metafield writes and tagging.
//
// Every call is a single POST to
//
//	https://{domain}/admin/api/{version}/graphql.json
//
// authenticated with the X-Shopify-Access-Token header. Calls are not
// retried; callers decide how an upstream failure is surfaced.
package shopify
