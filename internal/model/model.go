// Package model holds the entities shared by the repository, service and
// handler layers.
package model
