// Package handler turns request handlers into http.HandlerFunc values that
// return Response renderers: the JSON envelope, empty bodies, redirects and
// DataStar server-sent event streams.
//
//	r.Delete("/workspaces/{id}", handler.Wrap(h.deleteWorkspace,
//		handler.WithErrorHandler(handler.LoggingErrorHandler(log)),
//	))
//
// Redirects are DataStar aware: a DataStar request receives a redirect event
// on an event stream instead of a 303.
package handler
