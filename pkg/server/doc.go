// Package server exposes the generator over HTTP: the HTML form page, a JSON
// API validated against the embedded OpenAPI document, health and metrics.
package server
