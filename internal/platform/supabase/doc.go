// Package supabase implements the identity provider used for registration
// and sign-in on top of the Supabase Auth (GoTrue) REST API.
//
// Only the password flow is supported: sign up, password grant and logout.
// Access tokens issued by GoTrue are verified locally by the auth service.
package supabase
