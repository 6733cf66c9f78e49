// Package httputil provides retry helpers for upstream API clients.
//
// Upstream calls are made once by default. Deployments that front flaky
// backends can raise the attempt count in configuration, in which case
// [Do] repeats only failures marked with [RetryableError], waiting with
// exponential backoff between tries:
//
//	err := httputil.Do(ctx, httputil.Policy{Attempts: 3, Delay: 200 * time.Millisecond}, func() error {
//	    return fetch()
//	})
//
// Not-found responses are never retried.
package httputil
