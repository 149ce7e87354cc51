// Package runspec defines the immutable per-invocation configuration shared
// by the resolver, the pipeline, and the placement manager, together with the
// derived staging paths that keep file naming consistent across stages.
package runspec
