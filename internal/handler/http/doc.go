// Package http implements the HTTP transport layer of the service.
//
// It composes the request pipeline in a fixed order (panic recovery, trace
// ids, access logging, hardening headers, cross-origin policy and rate
// limiting) in front of a table of typed endpoints. Every failure raised
// anywhere in that pipeline is handed to a single classifier that decides
// the status code and the JSON error envelope of the response.
package http
