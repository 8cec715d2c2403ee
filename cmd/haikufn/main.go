package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"crosswarped.com/haiku"
	"crosswarped.com/haiku/pkg/syllable"
)

type GeneratePoemsRequest struct {
	Pattern         []int    `json:"pattern"`
	WordScope       string   `json:"wordScope"`
	Words           []string `json:"words"`
	ExcludedWords   []string `json:"excludedWords"`
	Heuristic       bool     `json:"heuristic"`
	AllowDuplicates bool     `json:"allowDuplicates"`
	Workers         int      `json:"workers"`
	MaxPoems        int      `json:"maxPoems"`
}

type GeneratePoemsResponse struct {
	Success bool     `json:"success"`
	Poems   []string `json:"poems"`
	Error   string   `json:"error,omitempty"`
}

// getLexicon loads the words and syllable counts for a scope from BigQuery.
func getLexicon(ctx context.Context, scope string) ([]string, syllable.Static, error) {
	client, err := bigquery.NewClient(ctx, "haiku-x")
	if err != nil {
		return nil, nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT word, syllables FROM `haiku-x.Lexicon.all_words` WHERE scope = %q", scope)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	counts := syllable.Static{}
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		syllables, ok := row[1].(int64)
		if !ok {
			return nil, nil, fmt.Errorf("row[1] is not an integer: %v", row[1])
		}
		if syllables <= 0 {
			continue
		}
		words = append(words, word)
		counts[word] = int(syllables)
	}
	return words, counts, nil
}

func execute(ctx context.Context, logger *slog.Logger, req GeneratePoemsRequest) ([]string, error) {
	pattern := haiku.Pattern(req.Pattern)
	if len(pattern) == 0 {
		pattern = haiku.DefaultPattern
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if req.MaxPoems <= 0 {
		return nil, fmt.Errorf("maxPoems must be at least 1")
	}
	if req.MaxPoems > 10 {
		return nil, fmt.Errorf("maxPoems must be at most 10")
	}

	for i, word := range req.Words {
		req.Words[i] = syllable.Normalize(word)
	}
	for i, word := range req.ExcludedWords {
		req.ExcludedWords[i] = syllable.Normalize(word)
	}

	var chain syllable.Chain
	if req.WordScope != "" {
		scopeWords, counts, err := getLexicon(ctx, req.WordScope)
		if err != nil {
			return nil, fmt.Errorf("getLexicon: %w", err)
		}
		logger.Info("loaded lexicon scope", "scope", req.WordScope, "words", len(scopeWords))

		req.Words = append(req.Words, scopeWords...)
		chain = append(chain, counts)
	}
	if req.Heuristic {
		chain = append(chain, syllable.Heuristic{})
	}

	if len(req.Words) == 0 {
		return nil, fmt.Errorf("words must not be empty")
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no syllable source: provide a wordScope or set heuristic")
	}

	generator, err := haiku.CreateGenerator(pattern, req.Words, chain, haiku.GeneratorParams{
		ExcludedWords:   req.ExcludedWords,
		AllowDuplicates: req.AllowDuplicates,
		Workers:         req.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("CreateGenerator: %w", err)
	}

	var poems []string
	count := 0

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		logger.Info("setting timeout", "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for poem := range generator.Poems(ctx) {
		logger.Debug("generated poem", "number", 1+count, "max", req.MaxPoems)

		poems = append(poems, poem.Repr())
		count++
		if count >= req.MaxPoems {
			break
		}
	}

	return poems, ctx.Err()
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func generatePoems(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	logger := slog.Default().With("request", uuid.NewString())

	var req GeneratePoemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("parsing JSON body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := GeneratePoemsResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	poems, err := execute(r.Context(), logger, req)

	response := GeneratePoemsResponse{
		Success: err == nil,
		Poems:   poems,
	}

	if err != nil {
		logger.Error("generation failed", "error", err)
		response.Error = err.Error()
	} else if len(poems) == 0 {
		response.Error = "No poems could be generated with the given parameters"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("marshaling response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	funcframework.RegisterHTTPFunction("/generate-haiku", generatePoems)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
