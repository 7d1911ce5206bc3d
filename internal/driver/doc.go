// Package driver checks independent compilation units in parallel. Each
// unit gets its own model context, checker and diagnostic bag; nothing is
// shared between units except the tracer.
package driver
