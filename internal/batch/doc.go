// Package batch runs diagram generation over every snippet of a project.
//
// Two entry points share one render loop. RunDirect is the standalone
// generator: missing prerequisites and partial failures are errors. RunHook is
// the documentation build hook: it checks staleness first, degrades to a
// warning when tools are missing, and never fails the surrounding build.
package batch
