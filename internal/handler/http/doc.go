// Package http implements the HTML transport layer of the blog.
//
// It wires the chi router, renders the embedded html/template pages and
// carries the request-scoped concerns that sit in front of the service
// layer: trace ids, access logging, response compression, the signed
// session cookie, one-shot flash messages and the login / fresh-login gates
// that guard sensitive routes.
package http
