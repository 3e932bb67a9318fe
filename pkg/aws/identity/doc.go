// Package identity provides AWS config loading and the credential pre-check
// that gates a scan run.
//
// Before any per-profile work, the monitoring credentials are verified with
// STS GetCallerIdentity. An expired or invalid credential aborts the run with
// exit code 1; an unreachable STS endpoint aborts with exit code 2.
package identity
