/*
The resp package builds HTTP responses from a small set of collaborators
configured once, application-wide, on a [Responder].

A Responder depends on three collaborators:
  - a [TemplateEngine] for rendering HTML
  - a [UrlGenerator] for resolving named routes into URLs
  - a [Serializer] for encoding JSON payloads

Each Responder method returns a [*Response]: a status code, headers,
and either in-memory content or a reference to a file.
A Response is an [http.Handler], so handlers write it out with ServeHTTP:

	res, err := responder.Render("error.tmpl", map[string]any{"message": "Not Found!"}, resp.Code(http.StatusNotFound))
	if err != nil {
		return err
	}
	res.ServeHTTP(w, r)

Every argument with a default value is set through an [Fn] instead:
[Code] for the status code, [Header] and [Headers] for headers,
[SerializerContext] for serializer options,
[Filename], [Inline], [Attachment] and [FS] for files,
and [Reference] for the shape of a generated URL.
Methods ignore the Fns they have no use for.

Responder recovers from nothing.
Errors returned by a collaborator are returned to the caller as they are.
*/
package resp
