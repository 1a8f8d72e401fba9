// Package openapi embeds the HTTP API description and validates request
// bodies against it with kin-openapi.
package openapi
