// Package service contains the application use cases. Each service wraps a
// store or external provider interface, adds logging and translates
// lower-level sentinel errors into the service-level ones the API layer maps
// to HTTP status codes.
//
// Services receive their dependencies through constructor injection and never
// import concrete infrastructure packages.
package service
