package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// A tiny stand-in for a Plex Media Server: one "Movies" section, a genre
// directory and artwork. Enough to run the app and the e2e suite offline.
func main() {
	addr := getEnv("MOCK_PLEX_ADDR", ":32400")
	server := NewMockPlexServer(addr, getEnv("MOCK_PLEX_TOKEN", "mock-token"))

	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Mock Plex server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Mock Plex server...")
	_ = server.Stop(context.Background())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

type item struct {
	RatingKey      string  `json:"ratingKey"`
	GUID           string  `json:"guid"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Thumb          string  `json:"thumb"`
	Duration       int64   `json:"duration"`
	AudienceRating float64 `json:"audienceRating,omitempty"`
	Rating         float64 `json:"rating,omitempty"`

	genres []string
}

var library = []item{
	{RatingKey: "100", Title: "Alien", Summary: "In space no one can hear you scream.", Duration: 7020000, AudienceRating: 9.4, genres: []string{"Horror", "Science Fiction"}},
	{RatingKey: "101", Title: "Heat", Summary: "A group of professional bank robbers.", Duration: 10260000, Rating: 8.3, genres: []string{"Crime", "Drama"}},
	{RatingKey: "102", Title: "Airplane!", Summary: "Surely you can't be serious.", Duration: 5280000, AudienceRating: 8.9, genres: []string{"Comedy"}},
	{RatingKey: "103", Title: "Arrival", Summary: "Linguist meets heptapods.", Duration: 6960000, genres: []string{"Drama", "Science Fiction"}},
	{RatingKey: "104", Title: "Paddington 2", Summary: "Marmalade and a pop-up book.", Duration: 6240000, AudienceRating: 9.0, genres: []string{"Comedy", "Family"}},
	{RatingKey: "105", Title: "Short Term 12", Summary: "A group home for troubled teens.", Duration: 2940000, Rating: 7.9, genres: []string{"Drama"}},
}

var genres = []string{"Comedy", "Crime", "Drama", "Family", "Horror", "Science Fiction"}

type MockPlexServer struct {
	server *http.Server
	token  string
}

func NewMockPlexServer(addr, token string) *MockPlexServer {
	mux := http.NewServeMux()
	server := &MockPlexServer{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		token: token,
	}

	mux.HandleFunc("GET /{$}", server.identity)
	mux.HandleFunc("GET /library/sections", server.sections)
	mux.HandleFunc("GET /library/sections/1/genre", server.genreDirectory)
	mux.HandleFunc("GET /library/sections/1/all", server.all)
	mux.HandleFunc("GET /library/metadata/{id}", server.metadata)
	mux.HandleFunc("GET /library/metadata/{id}/thumb/{stamp}", server.thumb)
	return server
}

func (m *MockPlexServer) Start() error {
	log.Printf("Mock Plex server starting on %s", m.server.Addr)
	return m.server.ListenAndServe()
}

func (m *MockPlexServer) Stop(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}

func (m *MockPlexServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-Plex-Token") != m.token {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeContainer(w http.ResponseWriter, container map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"MediaContainer": container})
}

func (m *MockPlexServer) identity(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	writeContainer(w, map[string]any{
		"machineIdentifier": "mock-plex-0001",
		"friendlyName":      "Mock Plex",
	})
}

func (m *MockPlexServer) sections(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	writeContainer(w, map[string]any{
		"Directory": []map[string]string{
			{"key": "1", "title": "Movies", "type": "movie"},
			{"key": "2", "title": "TV Shows", "type": "show"},
		},
	})
}

func (m *MockPlexServer) genreDirectory(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	dirs := make([]map[string]string, 0, len(genres))
	for i, g := range genres {
		dirs = append(dirs, map[string]string{
			"key":   fmt.Sprintf("/library/sections/1/all?genre=%d", i+1),
			"title": g,
		})
	}
	writeContainer(w, map[string]any{"Directory": dirs})
}

func (m *MockPlexServer) all(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	query := r.URL.Query()

	items := make([]item, 0, len(library))
	for _, it := range library {
		if g := query.Get("genre"); g != "" && !hasGenre(it, g) {
			continue
		}
		items = append(items, withThumb(it))
	}

	switch query.Get("sort") {
	case "random":
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	case "addedAt:desc":
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	if size, err := strconv.Atoi(query.Get("X-Plex-Container-Size")); err == nil && size < len(items) {
		items = items[:size]
	}

	writeContainer(w, map[string]any{"Metadata": items})
}

func hasGenre(it item, key string) bool {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > len(genres) {
		return false
	}
	for _, g := range it.genres {
		if g == genres[idx-1] {
			return true
		}
	}
	return false
}

func withThumb(it item) item {
	it.GUID = "plex://movie/mock" + it.RatingKey
	it.Thumb = "/library/metadata/" + it.RatingKey + "/thumb/1700000000"
	return it
}

func (m *MockPlexServer) metadata(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	id := r.PathValue("id")
	for _, it := range library {
		if it.RatingKey == id {
			writeContainer(w, map[string]any{"Metadata": []item{withThumb(it)}})
			return
		}
	}
	http.Error(w, "Not found", http.StatusNotFound)
}

// thumb answers with a 1x1 SVG so the proxy has something to stream.
func (m *MockPlexServer) thumb(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(w, r) {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(strings.TrimSpace(`
<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"><rect width="1" height="1" fill="#222"/></svg>`)))
}
