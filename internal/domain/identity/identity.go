// Package identity defines the authenticated-user value object the external
// identity provider supplies with every inbound call. The core trusts the
// opaque ID as borrower/lender identity and never inspects credentials.
package identity

type User struct {
	ID       string
	Email    string
	Verified bool
}
