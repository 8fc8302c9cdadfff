// Copyright (c) 2026 gollegro authors
// SPDX-License-Identifier: BSD-2-Clause

/*
Package soap implements the wire layer for the Allegro WebAPI: a SOAP 1.1
envelope codec and an HTTP client bound to the service endpoint.

The WebAPI is an RPC-style SOAP service. A request for operation "doFoo" is
a <doFooRequest> element holding named parameters; the response is a
<doFooResponse> element. Repeated values travel as <item> children of the
list element. [Response] flattens those wrappers, so callers always see flat
element lists.

Service-level errors arrive as SOAP faults carrying a machine-readable fault
code ("ERR_NO_SESSION", "ERR_INTERNAL_SYSTEM_ERROR", ...); the client
returns them as [*Fault]. Connectivity failures are wrapped with
[ErrTransport] so callers can tell the two classes apart with errors.Is /
errors.As.
*/
package soap
