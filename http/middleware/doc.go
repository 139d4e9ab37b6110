/*
The middleware package defines what a middleware is and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - InjectResponder
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors(0, 0)
	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(responder, vs),
		middleware.ForceHTTPS(responder, env),
		middleware.InjectResponder(responder),
	}
*/
package middleware
