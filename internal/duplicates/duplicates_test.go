package duplicates

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searchserver"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

func corpus(t *testing.T) *searchserver.SearchServer {
	t.Helper()
	s, err := searchserver.NewFromText("and with", searchserver.WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	docs := []struct {
		id   int
		text string
	}{
		{1, "funny pet and nasty rat"},
		{2, "funny pet with curly hair"},
		// same terms as 2
		{3, "funny pet with curly hair"},
		// differs from 2 only in stop words
		{4, "funny pet and curly hair"},
		// same set as 1, different frequencies
		{5, "funny funny pet and nasty nasty rat"},
		{6, "funny pet and not very nasty rat"},
		// order differs from 6
		{7, "very nasty rat and not very funny pet"},
		// subset of 7
		{8, "pet with rat and rat and rat"},
		{9, "nasty rat with curly hair"},
	}
	for _, d := range docs {
		if err := s.AddDocument(d.id, d.text, document.StatusActual, []int{1, 2}); err != nil {
			t.Fatalf("AddDocument(%d): %v", d.id, err)
		}
	}
	return s
}

func TestFind(t *testing.T) {
	s := corpus(t)
	if want := []int{3, 4, 5, 7}; !reflect.DeepEqual(Find(s), want) {
		t.Errorf("Find = %v, want %v", Find(s), want)
	}
}

func TestFindKeepsLowestIDRegardlessOfInsertionOrder(t *testing.T) {
	s, _ := searchserver.NewFromText("", searchserver.WithLogger(logger.Discard()))
	_ = s.AddDocument(9, "cat dog", document.StatusActual, nil)
	_ = s.AddDocument(2, "dog cat", document.StatusActual, nil)
	_ = s.AddDocument(5, "cat cat dog", document.StatusActual, nil)
	if want := []int{5, 9}; !reflect.DeepEqual(Find(s), want) {
		t.Errorf("Find = %v, want %v", Find(s), want)
	}
}

func TestRemove(t *testing.T) {
	s := corpus(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	removed := Remove(s, log)
	if want := []int{3, 4, 5, 7}; !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	if s.DocumentCount() != 5 {
		t.Errorf("DocumentCount = %d, want 5", s.DocumentCount())
	}
	if got := strings.Count(buf.String(), "found duplicate document"); got != 4 {
		t.Errorf("logged %d duplicates, want 4:\n%s", got, buf.String())
	}
	if len(Remove(s, log)) != 0 {
		t.Error("second pass found duplicates")
	}
}

func TestFindEmpty(t *testing.T) {
	s, _ := searchserver.NewFromText("", searchserver.WithLogger(logger.Discard()))
	if got := Find(s); len(got) != 0 {
		t.Errorf("Find on empty server = %v", got)
	}
}
