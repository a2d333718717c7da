// Package kodi talks to a Kodi media center over its JSON-RPC HTTP API.
//
// The client is deliberately narrow: it searches the audio and video
// libraries by title substring and answers a ping. Every call is a Basic
// authenticated POST with a hard timeout; redirects are never followed and only
// plain http endpoints are accepted because Kodi's built-in web server does not
// terminate TLS.
package kodi
