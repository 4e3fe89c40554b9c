// seed registers a demo user against a running local server and publishes a
// batch of todo events through the relay.
// Run: go run ./cmd/seed
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	demoName     = "Seed User"
	demoEmail    = "seed@test.local"
	demoPassword = "seed-password-1"
)

type todoSpec struct {
	id     int
	text   string
	status bool
}

var todos = []todoSpec{
	{101, "Review open pull requests", false},
	{102, "Water the plants", true},
	{103, "Plan the week", false},
	{104, "Clear the inbox", false},
	{105, "Book dentist appointment", true},
}

func main() {
	base := os.Getenv("SEED_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}

	token, err := register(client, base)
	if err != nil {
		log.Fatalf("register: %v", err)
	}
	fmt.Printf("registered %s\n", demoEmail)

	for _, t := range todos {
		payload := map[string]any{
			"channel": "todo-channel",
			"event":   "create-todo",
			"data": map[string]any{
				"id":      t.id,
				"text":    t.text,
				"status":  t.status,
				"creator": demoEmail,
			},
		}
		if err := post(client, base+"/pusher", token, payload, nil); err != nil {
			log.Fatalf("publish todo %d: %v", t.id, err)
		}
		fmt.Printf("published create-todo %d: %s\n", t.id, t.text)
	}

	fmt.Printf("done: %d todos published\n", len(todos))
}

func register(client *http.Client, base string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	payload := map[string]string{
		"name":     demoName,
		"email":    demoEmail,
		"password": demoPassword,
	}
	err := post(client, base+"/register", "", payload, &res)
	if err == nil {
		return res.Token, nil
	}

	// Already seeded from a previous run: log in instead.
	err = post(client, base+"/login", "", map[string]string{
		"email":    demoEmail,
		"password": demoPassword,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

func post(client *http.Client, url, token string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
