package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"semdex"
	"semdex/config"
	"semdex/internal/adapter/source"
)

func main() {
	dir := flag.String("dir", ".", "Directory of text files to ingest")
	query := flag.String("q", "", "Query to test")
	topK := flag.Int("k", 5, "Number of results")
	include := flag.String("include", "**/*.txt", "Include glob (doublestar)")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./notes -q \"query\"")
		fmt.Println("\nIngests every matching file, then reports:")
		fmt.Println("  1. Ingestion throughput (docs, chunks, cached embeddings)")
		fmt.Println("  2. Ranked matches for the query")
		fmt.Println("  3. Score quality summary")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	engine, err := semdex.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	docs, err := source.NewFileSource(*dir, []string{*include}, nil).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *dir, err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Fprintf(os.Stderr, "No files under %s match %s\n", *dir, *include)
		os.Exit(1)
	}

	fmt.Println("RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Provider: %s\n", cfg.Embedding.Provider)
	fmt.Printf("Documents: %d\n\n", len(docs))

	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	start := time.Now()
	for _, doc := range docs {
		engine.AddDocument(semdex.Document{ID: doc.ID, Content: doc.Content})
		bar.Add(1)
	}
	elapsed := time.Since(start)

	stats := engine.Stats()
	fmt.Printf("\nIngested %d docs / %d chunks in %s (%d embeddings cached)\n\n",
		stats.Documents, stats.Chunks, elapsed.Round(time.Millisecond), stats.CacheEntries)

	fmt.Printf("Query: \"%s\"\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	results := engine.Search(*query, *topK)
	if len(results) == 0 {
		fmt.Println("No scoreable results.")
		return
	}

	totalScore := 0.0
	for i, r := range results {
		totalScore += r.Score

		preview := strings.ReplaceAll(r.Text, "\n", " ")
		if len(preview) > 150 {
			preview = preview[:150] + "..."
		}

		rating := "LOW"
		if r.Score > 0.7 {
			rating = "HIGH"
		} else if r.Score > 0.5 {
			rating = "GOOD"
		} else if r.Score > 0.3 {
			rating = "OK"
		}

		fmt.Printf("%d. [%s %.3f] %s\n", i+1, rating, r.Score, r.DocumentID)
		fmt.Printf("   %s\n\n", preview)
	}

	avgScore := totalScore / float64(len(results))
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  Average score: %.3f\n", avgScore)
	fmt.Printf("  Top-1 score:   %.3f\n", results[0].Score)

	if avgScore > 0.5 {
		fmt.Println("  Status: GOOD - retrieval working well")
	} else if avgScore > 0.3 {
		fmt.Println("  Status: OK - results are somewhat related")
	} else {
		fmt.Println("  Status: POOR - consider a stronger embedding provider")
	}
}
