// Package config resolves the process-lifetime runtime configuration for a
// launchpad service.
//
// Resolution order: optional YAML config file, then a .env file, then the
// process environment. The hosting platform normally supplies PORT; when it
// does not, the listener defaults to 0.0.0.0:8080. The resolved Runtime
// value is constructed once at process start and passed explicitly to the
// launcher; nothing deeper in the call chain reads the environment.
package config
