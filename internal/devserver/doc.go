// Package devserver is a self-contained CRM backend for local development.
//
// It serves the REST surface the client expects (login, register, identity,
// onboarding status, notifications) from an in-memory store, issuing HS256
// bearer tokens. State does not survive a restart; it exists so the client
// can be exercised end to end without the real backend.
package devserver
