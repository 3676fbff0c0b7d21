//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// mockBackend serves the search, session validation, and download
// endpoints the client talks to.
type mockBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	searches int
	lastBody string
}

type mockRoom struct {
	RID      int64   `json:"rid"`
	RoomName string  `json:"room_name"`
	State    string  `json:"state"`
	UsingFee int     `json:"using_fee"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

func newMockBackend() *mockBackend {
	b := &mockBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("/app/room/search", b.handleSearch)
	mux.HandleFunc("/api/validate_session", b.handleValidate)
	mux.HandleFunc("/api/download_excel", b.handleDownload)

	b.server = httptest.NewServer(mux)
	return b
}

func (b *mockBackend) Close() {
	b.server.Close()
}

// Env returns the endpoint overrides for the spawned binary.
func (b *mockBackend) Env() []string {
	return []string{
		"ROOMSEARCH_SEARCH_URL=" + b.server.URL + "/app/room/search",
		"ROOMSEARCH_VALIDATE_URL=" + b.server.URL + "/api/validate_session",
		"ROOMSEARCH_DOWNLOAD_URL=" + b.server.URL + "/api/download_excel",
	}
}

func (b *mockBackend) SearchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searches
}

func (b *mockBackend) handleSearch(w http.ResponseWriter, r *http.Request) {
	body := make([]byte, 1<<16)
	n, _ := r.Body.Read(body)

	b.mu.Lock()
	b.searches++
	b.lastBody = string(body[:n])
	b.mu.Unlock()

	rooms := []mockRoom{
		{RID: 101, RoomName: "신촌 오피스텔", State: "서울", UsingFee: 350000, Lat: 37.5551, Lng: 126.9368},
		{RID: 102, RoomName: "홍대 투룸", State: "서울", UsingFee: 420000, Lat: 37.5575, Lng: 126.9241},
		{RID: 103, RoomName: "강남 원룸", State: "서울", UsingFee: 510000, Lat: 37.4979, Lng: 127.0276},
	}

	// Keyword searches narrow the result set
	if strings.Contains(b.lastRequest(), "keyword=") {
		rooms = rooms[:1]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"error_code":   0,
		"cdn_base_url": "https://cdn.example.com",
		"list":         rooms,
	})
}

func (b *mockBackend) lastRequest() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *mockBackend) handleValidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"valid": true, "message": "ok"})
}

func (b *mockBackend) handleDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''report.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Write([]byte("PK\x03\x04 mock spreadsheet"))
}
