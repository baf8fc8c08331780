// Package store defines the persistence interface for tasks along with
// the sentinel errors implementations report. Handlers depend on these
// abstractions rather than on a concrete database, keeping the HTTP
// layer independent of storage details.
package store
