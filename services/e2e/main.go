package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

func baseURL() string {
	env := os.Getenv("ENV")
	switch env {
	case "CI":
		return "http://core-app:5005/api/v1"
	}
	return "http://localhost:5005/api/v1"
}

type Movie struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Thumb string `json:"thumb"`
}

type SwipeRequest struct {
	MovieID   string `json:"movie_id"`
	Direction string `json:"direction"`
	Title     string `json:"title"`
	Thumb     string `json:"thumb"`
}

type SwipeResponse struct {
	Match bool   `json:"match"`
	Title string `json:"title"`
}

type Match struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
}

type RoomStatus struct {
	Ready bool   `json:"ready"`
	Genre string `json:"genre"`
}

func main() {
	fmt.Println("Starting E2E pairing flow against KinoSwipe API...")
	if err := runPairingFlow(); err != nil {
		fmt.Printf("E2E failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\n All E2E tests passed!")
}

// Participant is a browser: it keeps its session cookie between calls.
type Participant struct {
	name   string
	client *http.Client
}

func newParticipant(name string) *Participant {
	jar, _ := cookiejar.New(nil)
	return &Participant{
		name: name,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

func (p *Participant) do(method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s %s failed: %v", p.name, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s %s returned status %d: %s", p.name, method, path, resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %v", path, err)
	}
	return nil
}

func waitForService(p *Participant) bool {
	fmt.Println(" Waiting for service to be ready...")

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if err := p.do(http.MethodGet, "/rooms/current/status", nil, http.StatusOK, nil); err == nil {
			fmt.Println(" Service is ready!")
			return true
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}

	fmt.Println(" Service didn't start in time")
	return false
}

func runPairingFlow() error {
	host, guest := newParticipant("host"), newParticipant("guest")
	if !waitForService(host) {
		return fmt.Errorf("service unavailable at %s", baseURL())
	}

	fmt.Println("\n Step 1: Creating room...")
	var created struct {
		PairingCode string `json:"pairing_code"`
	}
	if err := host.do(http.MethodPost, "/rooms", nil, http.StatusCreated, &created); err != nil {
		return err
	}
	fmt.Printf("Room created. Code: %s\n", created.PairingCode)

	fmt.Println("\n Step 2: Joining room...")
	if err := guest.do(http.MethodPost, "/rooms/join", map[string]string{"code": created.PairingCode}, http.StatusOK, nil); err != nil {
		return err
	}
	var status RoomStatus
	if err := host.do(http.MethodGet, "/rooms/current/status", nil, http.StatusOK, &status); err != nil {
		return err
	}
	if !status.Ready {
		return fmt.Errorf("room is not ready after join")
	}

	fmt.Println("\n Step 3: Swiping...")
	var movies []Movie
	if err := host.do(http.MethodGet, "/rooms/current/movies", nil, http.StatusOK, &movies); err != nil {
		return err
	}
	if len(movies) == 0 {
		return fmt.Errorf("room has no movies")
	}
	like := SwipeRequest{
		MovieID:   movies[0].ID,
		Direction: "right",
		Title:     movies[0].Title,
		Thumb:     movies[0].Thumb,
	}

	var result SwipeResponse
	if err := host.do(http.MethodPost, "/rooms/current/swipes", like, http.StatusOK, &result); err != nil {
		return err
	}
	if result.Match {
		return fmt.Errorf("first like must not match")
	}
	if err := guest.do(http.MethodPost, "/rooms/current/swipes", like, http.StatusOK, &result); err != nil {
		return err
	}
	if !result.Match {
		return fmt.Errorf("second like must match")
	}

	var matches []Match
	if err := host.do(http.MethodGet, "/rooms/current/matches", nil, http.StatusOK, &matches); err != nil {
		return err
	}
	if len(matches) != 1 || matches[0].MovieID != movies[0].ID {
		return fmt.Errorf("unexpected matches: %+v", matches)
	}
	fmt.Printf("Matched on %s\n", matches[0].Title)

	fmt.Println("\n Step 4: Quitting room...")
	if err := guest.do(http.MethodDelete, "/rooms/current", nil, http.StatusOK, nil); err != nil {
		return err
	}
	return guest.do(http.MethodPost, "/rooms/join", map[string]string{"code": created.PairingCode}, http.StatusNotFound, nil)
}
