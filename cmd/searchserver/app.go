package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/batch"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/duplicates"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/paginator"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/requestqueue"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searchserver"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type app struct {
	server   *searchserver.SearchServer
	cfg      *config.Config
	metrics  *metrics.Metrics
	parallel bool
	logger   *slog.Logger
}

func (a *app) policy() searchserver.Policy {
	if a.parallel {
		return searchserver.Parallel
	}
	return searchserver.Sequential
}

// loadDocuments reads "id<TAB>status<TAB>ratings<TAB>text" lines. Blank lines
// and lines starting with '#' are skipped. Malformed lines fail the load;
// documents the server rejects are logged and skipped.
func (a *app) loadDocuments(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	loaded := 0
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, status, ratings, text, err := parseDocumentLine(line)
		if err != nil {
			return loaded, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := a.server.AddDocument(id, text, status, ratings); err != nil {
			a.logger.Warn("document skipped", "line", lineNo, "doc_id", id, "error", err)
			continue
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("reading documents: %w", err)
	}
	return loaded, nil
}

func parseDocumentLine(line string) (int, document.Status, []int, string, error) {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) != 4 {
		return 0, 0, nil, "", fmt.Errorf("expected 4 tab separated fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, nil, "", fmt.Errorf("parsing id: %w", err)
	}
	status := document.StatusActual
	if s := strings.TrimSpace(fields[1]); s != "" {
		if status, err = document.ParseStatus(s); err != nil {
			return 0, 0, nil, "", err
		}
	}
	ratings := make([]int, 0, 4)
	for _, f := range strings.Fields(fields[2]) {
		r, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, nil, "", fmt.Errorf("parsing rating %q: %w", f, err)
		}
		ratings = append(ratings, r)
	}
	return id, status, ratings, fields[3], nil
}

func (a *app) removeDuplicates() []int {
	removed := duplicates.Remove(a.server, a.logger)
	a.metrics.DuplicatesRemoved(len(removed))
	return removed
}

// serve answers one query per input line until EOF or ctx is done. Lines
// starting with ':' are commands: ":match ID QUERY", ":words ID",
// ":remove ID", ":batch Q1 | Q2 ...".
func (a *app) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	queue := requestqueue.New(policySearcher{a.server, a.policy()}, a.cfg.Requests.Window, a.metrics)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	w := bufio.NewWriter(out)
	defer w.Flush()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, ":") {
				a.command(w, line[1:])
			} else {
				a.search(w, queue, line)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(w, "no-result requests: %d\n", queue.NoResultRequests())
	select {
	case err := <-scanErr:
		return err
	default:
		return nil
	}
}

func (a *app) search(w io.Writer, queue *requestqueue.RequestQueue, query string) {
	docs, err := queue.AddFindRequest(query)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	printResults(w, query, docs, a.cfg.Output.PageSize)
}

func printResults(w io.Writer, query string, docs []ranker.ScoredDoc, pageSize int) {
	fmt.Fprintf(w, "Results for %q:\n", query)
	for i, page := range paginator.Paginate(docs, pageSize) {
		if i > 0 {
			fmt.Fprintln(w, "Page break")
		}
		for _, d := range page {
			fmt.Fprintf(w, "{ document_id = %d, relevance = %.6f, rating = %d }\n", d.ID, d.Relevance, d.Rating)
		}
	}
}

func (a *app) command(w io.Writer, line string) {
	name, rest, _ := strings.Cut(line, " ")
	switch name {
	case "match":
		idText, query, _ := strings.Cut(rest, " ")
		id, err := strconv.Atoi(idText)
		if err != nil {
			fmt.Fprintf(w, "error: bad id %q\n", idText)
			return
		}
		words, status, err := a.server.MatchDocumentWithPolicy(a.policy(), query, id)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "{ document_id = %d, status = %s, words = %s }\n", id, status, strings.Join(words, " "))
	case "words":
		id, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			fmt.Fprintf(w, "error: bad id %q\n", rest)
			return
		}
		freqs := a.server.WordFrequencies(id)
		terms := make([]string, 0, len(freqs))
		for term := range freqs {
			terms = append(terms, term)
		}
		slices.Sort(terms)
		for _, term := range terms {
			fmt.Fprintf(w, "%s %.6f\n", term, freqs[term])
		}
	case "remove":
		id, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			fmt.Fprintf(w, "error: bad id %q\n", rest)
			return
		}
		a.server.RemoveDocumentWithPolicy(a.policy(), id)
		fmt.Fprintf(w, "documents: %d\n", a.server.DocumentCount())
	case "batch":
		queries := strings.Split(rest, "|")
		for i := range queries {
			queries[i] = strings.TrimSpace(queries[i])
		}
		results, err := batch.ProcessQueries(policySearcher{a.server, a.policy()}, queries, a.cfg.Engine.Workers)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		for i, docs := range results {
			printResults(w, queries[i], docs, a.cfg.Output.PageSize)
		}
	default:
		fmt.Fprintf(w, "error: unknown command %q\n", name)
	}
}

// policySearcher runs every search of a RequestQueue or batch under one
// execution policy.
type policySearcher struct {
	server *searchserver.SearchServer
	policy searchserver.Policy
}

func (p policySearcher) FindTopDocuments(query string) ([]ranker.ScoredDoc, error) {
	return p.server.FindTopDocumentsWithPolicy(p.policy, query, searchserver.ByStatus(document.StatusActual))
}

func (p policySearcher) FindTopDocumentsByStatus(query string, status document.Status) ([]ranker.ScoredDoc, error) {
	return p.server.FindTopDocumentsWithPolicy(p.policy, query, searchserver.ByStatus(status))
}

func (p policySearcher) FindTopDocumentsFiltered(query string, filter searchserver.Filter) ([]ranker.ScoredDoc, error) {
	return p.server.FindTopDocumentsWithPolicy(p.policy, query, filter)
}
