/*
The interchange package re-exposes a [resp.Responder] for code expecting
responses in another representation, such as a *http.Response.

A [Responder] delegates every call to the wrapped resp.Responder
and hands the resulting *resp.Response to a [Factory] exactly once.
Errors from either the resp.Responder or the Factory return unchanged.
*/
package interchange
