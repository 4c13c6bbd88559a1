package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"loyaltyflow/client"
	v1 "loyaltyflow/pkg/api/v1"
	"loyaltyflow/pkg/campaign"
)

var (
	targetURL = flag.String("url", "http://localhost:8080", "Server address")
	sdkKey    = flag.String("key", "dev-reward-issuer", "SDK Key")
	totalVUs  = flag.Int("c", 200, "Total Virtual Users (Concurrency)")
	duration  = flag.Duration("d", 30*time.Second, "Test duration")
	history   = flag.Int("history", 50, "Prior purchases per evaluation")
)

var (
	requests  int64
	total     int64
	errCount  int64
	qualified int64
	latSumUs  int64
)

func main() {
	flag.Parse()

	fmt.Printf("Starting evaluate load test\n")
	fmt.Printf("   Target: %s\n", *targetURL)
	fmt.Printf("   VUs: %d, duration: %v, history: %d\n", *totalVUs, *duration, *history)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	go report(ctx)

	var wg sync.WaitGroup
	for i := 0; i < *totalVUs; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runClient(ctx, id)
		}(i)
	}
	wg.Wait()

	fmt.Printf("done: %d requests, %d errors, %d qualified\n", atomic.LoadInt64(&total), atomic.LoadInt64(&errCount), atomic.LoadInt64(&qualified))
}

func report(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := atomic.SwapInt64(&requests, 0)
			lat := atomic.SwapInt64(&latSumUs, 0)
			avg := float64(0)
			if n > 0 {
				avg = float64(lat) / float64(n) / 1000
			}
			fmt.Printf("[%s] req/s: %d | errors: %d | avg latency: %.2f ms\n",
				time.Now().Format("15:04:05"), n, atomic.LoadInt64(&errCount), avg)
		}
	}
}

func stampsContext(id int) v1.EvaluationContext {
	start := time.Now().Add(-30 * 24 * time.Hour)
	purchases := make([]campaign.Purchase, 0, *history)
	for i := 0; i < *history; i++ {
		purchases = append(purchases, campaign.Purchase{CreatedAt: start.Add(time.Duration(i+1) * time.Hour)})
	}
	return v1.EvaluationContext{
		Values:       []string{fmt.Sprintf("%d", *history+1+id%2)},
		Purchase:     &campaign.Purchase{ID: fmt.Sprintf("vu-%d", id), CreatedAt: time.Now()},
		CustomerData: campaign.CustomerData{Purchases: purchases},
		Campaign:     v1.CampaignWindow{Start: start},
	}
}

func runClient(ctx context.Context, id int) {
	c := client.NewLoyaltyClient(*targetURL, *sdkKey)
	ec := stampsContext(id)

	for ctx.Err() == nil {
		begin := time.Now()
		d, err := c.Evaluate(ctx, campaign.Stamps, ec)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if atomic.AddInt64(&errCount, 1) == 1 {
				fmt.Printf("first error: %v\n", err)
			}
			continue
		}
		atomic.AddInt64(&requests, 1)
		atomic.AddInt64(&total, 1)
		atomic.AddInt64(&latSumUs, time.Since(begin).Microseconds())
		if d.Qualified {
			atomic.AddInt64(&qualified, 1)
		}
	}
}
