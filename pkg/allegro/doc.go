// Copyright (c) 2026 gollegro authors
// SPDX-License-Identifier: BSD-2-Clause

/*
Package allegro implements the WebAPI client: session lifecycle, the
resilient call dispatcher, and the catalog of remote operations.

# Session lifecycle

Login is a two-step handshake: a system-status query yields a short-lived
verification key, which is then submitted together with the username, the
sha256 password digest and the WebAPI key to obtain an opaque session
token. The token is attached to every subsequent call, as sessionHandle
for standard operations and as sessionId for the two journal-polling
operations.

# Resilience

Every operation goes through a single dispatch loop. Connectivity failures
and transient server faults are retried after a fixed delay; an expired or
missing session triggers a fresh login handshake before the retry; any
other failure is logged in full and handled as a possible session
problem (re-login, then retry). The loop has no attempt cap: a
call returns successfully or keeps retrying until its context is
cancelled. This suits the unattended batch integrations the library
targets; interactive callers bound calls with context deadlines.

# Sequencing

A Client is single-threaded by contract: calls are issued one at a time
and each retry delay blocks the calling goroutine. The session token is
the only mutable state and is replaced wholesale on re-login. The remote
service keeps one live session per account, so run at most one live
Client per credential set.
*/
package allegro
