// Package domain holds the core types of taskpull: remote issue payloads,
// credentials, and the flat task records the importer produces. It has no
// dependencies on adapters or the network.
package domain
