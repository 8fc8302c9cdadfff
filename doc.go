// Copyright (c) 2026 gollegro authors
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gollegro is a resilient Go client for the Allegro auction-platform
WebAPI (SOAP).

# Overview

gollegro authenticates against the WebAPI, maintains a session token, and
issues remote operations (auction lookup, bid retrieval, order and buyer
data, payment reconciliation, feedback, journal-event polling, refunds).
Transient network failures, transient server faults, and session expiry are
handled transparently: every call is wrapped in a retry loop that re-logs-in
when the service reports an expired or missing session.

The library targets unattended batch integrations. A call either eventually
succeeds or keeps retrying with fixed-delay backoff while logging each
failure; there is no internal attempt cap. Callers that need a bound pass a
cancellable context.

# Package Structure

	github.com/oczkers/gollegro/pkg/allegro - client, session lifecycle, operation catalog
	github.com/oczkers/gollegro/pkg/soap    - SOAP 1.1 envelope codec and HTTP transport

# Quick Start

	import "github.com/oczkers/gollegro/pkg/allegro"

	client, err := allegro.New(ctx, "username", "password", "webapi-key")
	if err != nil {
		log.Fatal(err)
	}

	orders, err := client.Orders(ctx, []int64{6012345678, 6087654321})

# Constraints

The remote service keeps a single live session per account: constructing a
second client over the same credentials invalidates the first client's
session on its next re-login. Run one live client instance per credential
set.

# License

BSD-2-Clause License
*/
package gollegro
