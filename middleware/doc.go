// Package middleware bridges the signed session cookie and the in-memory
// session map for net/http servers.
//
// Per request the middleware moves through three steps. First it decodes the
// inbound cookie into a session.Map — a missing, tampered, expired, or
// otherwise undecodable cookie silently yields a fresh empty map. Then the
// map travels through the request context, where handlers read and mutate it
// via GetSession. Finally, just before response headers flush, the middleware
// looks at the map once and emits at most one Set-Cookie: a freshly signed
// token when the session is non-empty, a clearing cookie (value "null",
// epoch expiry) when a previously non-empty session was emptied, and nothing
// when an empty session stayed empty.
//
//	cfg := middleware.Config{}
//	config.MustLoad(&cfg)
//
//	sessions, err := middleware.NewFromConfig(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
//		sess := middleware.MustGetSession(r.Context())
//		sess.Set("item_id", itemID) // any normalizable value
//		w.WriteHeader(http.StatusOK)
//	})
//
//	http.ListenAndServe(":8080", sessions(mux))
//
// Normalization failures on the outbound path are fatal for the response:
// the configured ErrorHandler replaces the handler's output, because a
// corrupt or partial cookie must never reach the client.
package middleware
