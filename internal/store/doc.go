// Package store declares the persistence contracts shared by the task
// registry and the blog database, together with the error values every
// implementation reports (not found, duplicate, unavailable).
package store
