// Package accounts implements a minimal user-account service: password
// hashing and verification, stateless JWT issuance and validation, and the
// request-time pipeline that turns an Authorization header into a verified
// identity.
//
// The package is organized around four collaborators:
//   - HashPassword/ComparePasswordAndHash wrap bcrypt with a fixed cost.
//   - TokenService signs and validates short-lived identity tokens. All
//     validation failures are typed; the HTTP boundary collapses them into
//     a single unauthenticated outcome so callers cannot distinguish an
//     expired token from a tampered one.
//   - AccountService orchestrates signup, login, and user lookup against a
//     UserStore. Stores must enforce email uniqueness at the storage layer;
//     the service pre-check alone does not close the concurrent-signup race.
//   - RequireIdentity is the Fiber middleware that extracts the bearer
//     token, validates it, loads the user, and stores the public Identity
//     projection in the request locals.
//
// Two UserStore implementations ship with the package: a Bun-backed SQL
// repository (see NewUsersRepository) and an in-memory store for tests and
// quick starts (see NewMemoryUserStore).
package accounts
