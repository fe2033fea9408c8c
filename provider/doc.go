// Package provider resolves the externally supplied application object that
// the launcher serves.
//
// The application is an http.Handler located by a fixed reference string in
// module-path:attribute form (e.g. "app.main:app"), mirroring how ASGI
// servers import their application object. Providers self-register at init
// time, database/sql driver style:
//
//	func init() {
//	    provider.MustRegister("app.main:app", provider.Func("axis-api", newHandler))
//	}
//
// The launcher resolves the reference exactly once at startup; test doubles
// substitute by registering under a different reference or by constructing a
// Handle directly.
package provider
