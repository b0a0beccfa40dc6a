package ngram

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTestModel creates a Model from cfg with a fixed random source, so that
// stochastic sampling in tests is reproducible.
func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.SetRand(rand.New(rand.NewPCG(1, 2)))
	return m
}

// fishCorpus returns two short wrapped token streams with overlapping
// vocabulary, enough to exercise counting, ties and sentinels.
func fishCorpus() [][]string {
	return [][]string{
		Wrap([]string{"one", "fish", "two", "fish"}),
		Wrap([]string{"red", "fish", "blue", "fish"}),
	}
}

// trainedTestModel is a convenience helper that also trains on fishCorpus.
func trainedTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	m := newTestModel(t, cfg)
	m.Train(fishCorpus())
	return m
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}

// benchmarkStreams tokenizes the benchmark corpus into a single wrapped
// token stream.
func benchmarkStreams() [][]string {
	tok := NewWhitespaceTokenizer()
	return [][]string{Wrap(tok.Tokenize(createBenchmarkCorpus()))}
}
