// Package forms implements the two forms of the signed-out view: the
// login/register form and the resend-verification form.
//
// Forms are safe for concurrent use. Each submission runs under its own
// Ticket; a submission superseded by a newer one (or by Reset) has its
// context cancelled and its result dropped without touching form state.
// All outcomes, including transport failures, end up as a user-facing
// message on the form.
package forms
