// Package services contains the aggregation pipeline: the fetch strategies,
// the URL-keyed merge, the filter chain, and the record export stream.
package services
