// Package async provides utilities for parallel task execution.
//
// RunParallel runs named tasks on an errgroup with an optional concurrency
// limit and reports every failure, not only the first one. It is used to
// remove the DNS records of several domains at once.
package async
