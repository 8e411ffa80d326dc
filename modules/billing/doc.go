// Package billing exposes the subscription view and the guarded workspace
// deletion flow over HTTP.
//
// Routes:
//
//	GET    /subscription              current view (JSON)
//	GET    /subscription/stream       view as DataStar signals on every change
//	PATCH  /account                   merge account state
//	PUT    /workspaces/{id}           merge a workspace record
//	DELETE /workspaces/{id}           204, or 409 with the prompt when blocked
//	GET    /deletion-prompt           prompt descriptor
//	POST   /deletion-prompt/confirm   redirect to the settlement route
//	POST   /deletion-prompt/cancel    close the prompt
//
// Guards served by this module should be built with Navigator so the confirm
// navigation becomes the redirect.
package billing
