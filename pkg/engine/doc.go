// Package engine wraps the embedded script interpreter. An Instance is built
// whole from the base runtime plus a set of capability packages, evaluates
// script text against a per-call output capture, and classifies failures as
// parse errors or runtime errors.
package engine
