package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	fh := FeedHandler{Feed: d.Feed}
	mux.HandleFunc("/feed", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Get,
	}))

	sh := ScanHandler{State: d.ScanState, RunScan: d.RunScan}
	mux.HandleFunc("/scan/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/scan/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
