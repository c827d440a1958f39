// Package retry retries transient failures with exponential backoff.
//
// [Do] is used by the component runtime client: transport errors and 5xx
// responses are retried, while errors wrapped with [Fatal] (4xx responses,
// validation failures) end the loop at once.
package retry
