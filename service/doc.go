// Package service exposes the key=value pipeline over HTTP.
//
//	POST /parse   {"text": "...", "mode": "lines", "schema": {"port": "uint"}, "prefix": "", "normalize": false}
//	GET  /healthz
//
// A parse request always runs with the Collect policy: the response carries
// every property that could be stored and every entry that failed, with its
// kind, offset and line/column. The status is 200 when nothing failed and
// 422 otherwise.
package service
