// Package github projects raw issue and pull-request payloads into flat
// task records: derived priority, project, tags from labels, ordered
// annotations, and the copied field set the record store persists.
package github
