// loadgen floods the order API with synthetic submissions. Point it at a
// deployment with a test Stripe key only.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

type orderRequest struct {
	Address string    `json:"address"`
	Amount  float64   `json:"amount"`
	Dishes  []dishRef `json:"dishes"`
	Token   string    `json:"token"`
	City    string    `json:"city"`
	State   string    `json:"state"`
}

type dishRef struct {
	ID int64 `json:"id"`
}

var cities = []string{"Springfield", "Portland", "Austin", "Denver", "Madison"}
var states = []string{"IL", "OR", "TX", "CO", "WI"}

func generateOrder(maxDishID int64) orderRequest {
	n := 1 + rand.Intn(3)
	dishes := make([]dishRef, 0, n)
	for i := 0; i < n; i++ {
		dishes = append(dishes, dishRef{ID: 1 + rand.Int63n(maxDishID)})
	}
	i := rand.Intn(len(cities))
	return orderRequest{
		Address: "1 Main St",
		Amount:  float64(500+rand.Intn(5000)) + rand.Float64(),
		Dishes:  dishes,
		Token:   "tok_visa",
		City:    cities[i],
		State:   states[i],
	}
}

func main() {
	target := flag.String("target", envDefault("LOADGEN_TARGET", "http://localhost:8081"), "base URL of the order API")
	rate := flag.Int("rate", 5, "requests per second")
	duration := flag.Duration("duration", 30*time.Second, "how long to run")
	maxDishID := flag.Int64("max-dish-id", 20, "dish ids are drawn from [1, max-dish-id]")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()
	deadline := time.After(*duration)

	var sent, failed int
	for {
		select {
		case <-ticker.C:
			body, err := json.Marshal(generateOrder(*maxDishID))
			if err != nil {
				log.Printf("marshal: %v", err)
				continue
			}
			resp, err := client.Post(*target+"/orders", "application/json", bytes.NewReader(body))
			if err != nil {
				failed++
				log.Printf("post: %v", err)
				continue
			}
			resp.Body.Close()
			sent++
			if resp.StatusCode >= 500 {
				failed++
				log.Printf("status %d", resp.StatusCode)
			}
		case <-deadline:
			log.Printf("done: sent=%d failed=%d", sent, failed)
			return
		}
	}
}

func envDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
