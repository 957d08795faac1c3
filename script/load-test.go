package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// CheckIn represents the check-in payload
type CheckIn struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Gender string `json:"gender"`
	Role   string `json:"role"`
}

// Response represents the API response
type Response struct {
	Outcome  string `json:"outcome"`
	Date     string `json:"date,omitempty"`
	NewCount int    `json:"newCount,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Outcome      string
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests     int
	CompletedRequests int
	FailedRequests    int
	TotalTime         time.Duration
	MinResponseTime   time.Duration
	MaxResponseTime   time.Duration
	TotalResponseTime time.Duration
	ResponseTimes     []time.Duration
	OutcomeCounts     map[string]int
	ErrorCounts       map[string]int
	Lock              sync.Mutex
}

// swimmer is one simulated identity with its access token
type swimmer struct {
	UserID string
	Token  string
	Gender string
	Role   string
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 200, "Total number of requests to make")
	users := flag.Int("users", 50, "Number of distinct simulated swimmers")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	tokenPrefix := flag.String("token-prefix", "load-token-", "Prefix of pre-seeded token values")
	delayMs := flag.Int("delay", 50, "Delay between requests in milliseconds")
	flag.Parse()

	genders := []string{"male", "female"}
	roles := []string{"faculty", "postgraduate", "undergraduate", "staff"}

	// Build the simulated swimmer population. Tokens must be seeded in the
	// database beforehand as <prefix><n> issued to user load-user-<n>.
	swimmers := make([]swimmer, *users)
	for i := range swimmers {
		swimmers[i] = swimmer{
			UserID: fmt.Sprintf("load-user-%d", i),
			Token:  fmt.Sprintf("%s%d", *tokenPrefix, i),
			Gender: genders[i%len(genders)],
			Role:   roles[i%len(roles)],
		}
	}

	fmt.Printf("Load testing check-in API with %d swimmers\n", len(swimmers))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		OutcomeCounts:   make(map[string]int),
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, swimmers, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range results {
			stats.Lock.Lock()
			if result.Error != nil {
				stats.FailedRequests++
				stats.ErrorCounts[result.Error.Error()]++
			} else {
				stats.CompletedRequests++
				stats.OutcomeCounts[result.Outcome]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	wg.Wait()
	close(results)
	<-done

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(baseURL string, delayMs int, swimmers []swimmer, jobs <-chan int, results chan<- TestResult) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		s := swimmers[rand.Intn(len(swimmers))]
		payload := CheckIn{
			Token:  s.Token,
			UserID: s.UserID,
			Gender: s.Gender,
			Role:   s.Role,
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			results <- TestResult{Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+"/checkin", bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		startTime := time.Now()
		resp, err := client.Do(req)
		elapsed := time.Since(startTime)
		if err != nil {
			results <- TestResult{Error: err, ResponseTime: elapsed}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var parsed Response
		outcome := fmt.Sprintf("http-%d", resp.StatusCode)
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Outcome != "" {
			outcome = parsed.Outcome
		}

		results <- TestResult{
			Outcome:      outcome,
			StatusCode:   resp.StatusCode,
			ResponseTime: elapsed,
		}
	}
}

func printResults(stats *TestStats) {
	fmt.Println("\n========== Results ==========")
	fmt.Printf("Total requests:     %d\n", stats.TotalRequests)
	fmt.Printf("Completed:          %d\n", stats.CompletedRequests)
	fmt.Printf("Transport failures: %d\n", stats.FailedRequests)
	fmt.Printf("Total time:         %v\n", stats.TotalTime)

	if len(stats.ResponseTimes) > 0 {
		avg := stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
		fmt.Printf("Min response time:  %v\n", stats.MinResponseTime)
		fmt.Printf("Max response time:  %v\n", stats.MaxResponseTime)
		fmt.Printf("Avg response time:  %v\n", avg)

		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		fmt.Printf("p50 response time:  %v\n", sorted[len(sorted)*50/100])
		fmt.Printf("p95 response time:  %v\n", sorted[len(sorted)*95/100])
	}

	fmt.Println("\nOutcomes:")
	outcomes := make([]string, 0, len(stats.OutcomeCounts))
	for outcome := range stats.OutcomeCounts {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	for _, outcome := range outcomes {
		fmt.Printf("  %-20s %d\n", outcome, stats.OutcomeCounts[outcome])
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\nErrors:")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("  %s: %d\n", strings.TrimSpace(msg), count)
		}
	}
}
