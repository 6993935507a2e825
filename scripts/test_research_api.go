package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL   = "http://localhost:3000/api"
	sessionId = "smoke-test"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // Research calls can take minutes, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	company := "Tesla"
	if len(os.Args) > 1 {
		company = os.Args[1]
	}

	color.Cyan("🚀 Starting Company Research API Test (%s)\n", company)

	// 1. Chat
	color.Yellow("\n[1] Chat")
	resp, body, err := sendRequest("POST", "/chat/v1", map[string]interface{}{
		"message":    fmt.Sprintf("I want to research %s", company),
		"session_id": sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatRes map[string]interface{}
	json.Unmarshal(body, &chatRes)
	prettyPrint(chatRes)

	// 2. Research
	color.Yellow("\n[2] Research company")
	resp, body, err = sendRequest("POST", "/research/v1", map[string]interface{}{
		"company_name": company,
		"session_id":   sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var researchRes map[string]interface{}
	json.Unmarshal(body, &researchRes)
	prettyPrint(researchRes)

	// 3. Generate Plan
	color.Yellow("\n[3] Generate account plan")
	resp, body, err = sendRequest("POST", "/plan/v1/generate", map[string]interface{}{
		"company_name": company,
		"session_id":   sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var planRes map[string]interface{}
	json.Unmarshal(body, &planRes)
	prettyPrint(planRes)

	// 4. Update a section
	color.Yellow("\n[4] Update plan section")
	resp, body, err = sendRequest("PUT", "/plan/v1/section", map[string]interface{}{
		"section_path": "engagement_strategy.approach",
		"new_value":    "Executive-level workshops first",
		"session_id":   sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 5. List saved plans
	color.Yellow("\n[5] List saved plans")
	resp, body, err = sendRequest("GET", "/plan/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listRes map[string]interface{}
	json.Unmarshal(body, &listRes)
	prettyPrint(listRes)

	// 6. Reset session
	color.Yellow("\n[6] Reset session")
	resp, _, err = sendRequest("POST", "/chat/v1/reset", map[string]interface{}{
		"session_id": sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\n✅ Done")
}
