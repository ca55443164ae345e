//go:build !planfftdebug

package planfft

// debugChecks enables caller-contract assertions that panic on violation.
const debugChecks = false
