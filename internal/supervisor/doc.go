// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package supervisor runs the long-lived services under a suture tree.

	bovtag (root)
	├── live-layer   live hub, live refresher
	└── api-layer    HTTP server

A panicking or failing service is restarted by its layer with backoff; the
other layer keeps running. Supervisor events are logged through sutureslog
into the zerolog logger.
*/
package supervisor
