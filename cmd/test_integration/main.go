package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("GHRANK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	login := "octocat"
	if len(os.Args) > 1 {
		login = os.Args[1]
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Checking health...")
	if _, ok := sendRequest(http.MethodGet, baseURL+"/healthz", nil); !ok {
		fmt.Println("FAILED: Health")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health")

	fmt.Printf("2. Ranking %s...\n", login)
	payload := map[string]interface{}{
		"login": login,
		"depth": 2,
		"limit": 5,
	}
	body, ok := sendRequest(http.MethodPost, baseURL+"/rank", payload)
	if !ok {
		fmt.Println("FAILED: Rank")
		os.Exit(1)
	}

	var result struct {
		RunID string  `json:"run_id"`
		Score float64 `json:"score"`
		Graph struct {
			Nodes []struct {
				Login string  `json:"login"`
				Rank  float64 `json:"rank"`
			} `json:"nodes"`
		} `json:"graph"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("FAILED: Rank response is not valid JSON: %v\n", err)
		os.Exit(1)
	}
	if len(result.Graph.Nodes) == 0 || result.Graph.Nodes[0].Rank != result.Score {
		fmt.Println("FAILED: Rank graph does not start with the seed score")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Rank (run %s, %d nodes, score %.4f)\n", result.RunID, len(result.Graph.Nodes), result.Score)
}

func sendRequest(method, url string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	return respBody, true
}
