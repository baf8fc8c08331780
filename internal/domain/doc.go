// Package domain contains the core task entity, its defaults, and due
// date handling. It represents the heart of the system, independent of
// any specific storage or delivery mechanism.
package domain
