// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, and maximum delay. It is used for SSH dialing,
// health-check polling, and other operations that may fail transiently while
// a host or service is coming up.
package retry
