// Package api serves an xform graph over HTTP.
//
// A [Session] owns one graph together with the registry and texture store
// its xforms were made from; every request locks it, so the graph itself
// never sees concurrent access. [NewHandler] mounts the routes:
//
//	GET    /health                     build info
//	GET    /types                      registered xform types
//	GET    /xforms                     every xform with state and config
//	POST   /xforms                     make and add an xform
//	GET    /xforms/{name}              one xform
//	DELETE /xforms/{name}              delete an xform and its links
//	PUT    /xforms/{name}/config       set configuration values
//	GET    /connections                every link
//	POST   /connections                connect two ports
//	DELETE /connections/{xform}/{port} disconnect an input port
//	POST   /evaluate                   run an evaluation pass
//	GET    /results/{xform}/{port}     cached output (?format=png for pixels)
//	GET    /graph                      the graph as a JSON document
//	PUT    /graph                      replace the graph from a document
//	GET    /graph.dot, /graph.svg      node-link diagram
//	GET    /metrics                    Prometheus metrics
//
// Errors are JSON objects with the error code, a user-facing message and
// the full detail. Coded graph errors map to HTTP statuses: NO_SUCH_* to
// 404, XFORM_EXISTS and GRAPH_HAS_CYCLE to 409, PORTS_INCOMPATIBLE to 422
// and everything else to 400.
package api
