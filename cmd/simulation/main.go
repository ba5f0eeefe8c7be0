package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"campus-guide-be/internal/pkg/serverutils"

	"github.com/fatih/color"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type snapshot struct {
	Highlight string `json:"highlight"`
	View      struct {
		Tab string `json:"tab"`
	} `json:"view"`
	Pending *struct {
		Question string `json:"question"`
	} `json:"pending"`
}

type reply struct {
	Message  string   `json:"message"`
	Source   string   `json:"source"`
	Snapshot snapshot `json:"snapshot"`
}

type interaction struct {
	Outcome  string   `json:"outcome"`
	Message  string   `json:"message"`
	Snapshot snapshot `json:"snapshot"`
}

// action is one scripted student move: a chat line or a click.
type action struct {
	say   string
	click string
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api/guide/v1", "guide API base url")
	userID := flag.String("user", "a2b94f4c-b674-433b-90be-65a91a37e7a3", "user id to sign the token for")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	token, err := serverutils.SignToken(secret, *userID)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	c := &client{baseURL: *baseURL, token: token, http: &http.Client{Timeout: time.Minute}}

	color.Cyan("=== Campus Guide Simulation Client ===")
	color.Cyan("Connecting as User: %s\n", *userID)

	var session struct {
		ID string `json:"id"`
	}
	if err := c.do(http.MethodPost, "/sessions", nil, &session); err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	color.Green("Session Created: %s", session.ID)

	script := []action{
		{say: "cyber laws marks"},
		{say: "yes"},
		{click: "tab:Academics"},
		{click: "btn:view-marks-19LAW101"},
		{say: "third last exam"},
		{click: "tab:Finance"},
		{click: "tab:Exams"},
		{say: "pay via upi"},
		{click: "tab:Finance"},
		{click: "btn:pay-outstanding"},
		{click: "btn:mode-upi"},
		{say: "cyber laws marks"},
		{say: "how do I get a bonafide certificate"},
	}

	base := "/sessions/" + session.ID
	for _, a := range script {
		start := time.Now()
		if a.say != "" {
			fmt.Printf("\nUSER: %s\n", a.say)
			var r reply
			if err := c.do(http.MethodPost, base+"/messages", map[string]string{"text": a.say}, &r); err != nil {
				color.Red("Failed: %v", err)
				continue
			}
			color.Green("GUIDE [%s, %v]: %s", r.Source, time.Since(start), r.Message)
			printSnapshot(r.Snapshot)
			continue
		}

		fmt.Printf("\nCLICK: %s\n", a.click)
		var res interaction
		if err := c.do(http.MethodPost, base+"/interactions", map[string]string{"step_id": a.click}, &res); err != nil {
			color.Red("Failed: %v", err)
			continue
		}
		if res.Outcome == "deviated" {
			color.Red("%s: %s", res.Outcome, res.Message)
		} else {
			color.Green("%s %s", res.Outcome, res.Message)
		}
		printSnapshot(res.Snapshot)
	}

	if err := c.do(http.MethodDelete, base, nil, nil); err != nil {
		color.Red("Failed to delete session: %v", err)
	}
}

func printSnapshot(s snapshot) {
	if s.Pending != nil {
		color.Yellow("  awaiting answer: %s", s.Pending.Question)
	}
	if s.Highlight != "" {
		color.Yellow("  highlight: %s", s.Highlight)
	}
	color.White("  view: %s", s.View.Tab)
}

func (c *client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("API Error %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}
