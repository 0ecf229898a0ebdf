// Package cli provides the interactive ZapDesk command-line client.
//
// It wires configuration, the local session store, the REST API client, the
// session manager, the notification poller, and the toast queue into an
// interactive REPL. Typical flow: hydrate the stored session, report where
// the onboarding gate would send the user, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with durable session persistence
//   - whoami and on-demand identity refresh
//   - Notification listing, per-id and bulk mark-as-read
//   - Transient toast messages with auto-expiry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
