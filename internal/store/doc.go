// Package store defines the persistence interfaces and sentinel errors used
// by the rest of the application. Implementations live under
// internal/platform; services and handlers depend only on these interfaces.
package store
