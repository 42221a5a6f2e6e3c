// Package domain contains the core business entities of the service: tasks,
// blog posts and the authenticated principal. It is independent of any
// storage or transport concern.
package domain
