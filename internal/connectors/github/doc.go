// Package github implements the authenticated, paginating client for
// GitHub-compatible REST APIs.
//
// The API paginates with a "Link" response header of comma-separated
// `<url>; rel="name"` entries. The client walks rel="next" links until the
// server omits them; there is no page cap. Every fetch operation returns a
// fully materialized slice, or an error and nothing, never partial pages.
//
// Authentication is fixed at construction: token credentials install an
// `Authorization: token <t>` header via an oauth2 static-token transport,
// basic credentials are applied per request. Requests are spaced by a
// proactive token bucket plus the reactive X-RateLimit-* headers; the client
// never retries (back-off policy belongs to a higher layer, if anywhere).
//
// The package also hosts ResolveRepoTag, which derives the "owner/name"
// repository tag from the heterogeneous payload shapes the three issue
// sources produce.
package github
