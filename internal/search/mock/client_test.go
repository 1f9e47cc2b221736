package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitbuilder587/boolsearch/internal/search"
)

func TestMockClient_Search(t *testing.T) {
	client := New().WithResults(
		search.Result{Title: "Test 1", Link: "https://example.com/1"},
		search.Result{Title: "Test 2", Link: "https://example.com/2"},
	)

	resp, err := client.Search(context.Background(), search.Request{Query: "test"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(resp.OrganicResults) != 2 {
		t.Errorf("Search() got %d results, want 2", len(resp.OrganicResults))
	}
	if client.LastRequest.Query != "test" {
		t.Errorf("LastRequest.Query = %q", client.LastRequest.Query)
	}
}

func TestMockClient_EmptyPayload(t *testing.T) {
	resp, err := New().Search(context.Background(), search.Request{Query: "test"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(search.Merge(resp)) != 0 {
		t.Error("expected empty payload")
	}
}

func TestMockClient_Error(t *testing.T) {
	wantErr := errors.New("boom")
	client := New().WithError(wantErr)

	_, err := client.Search(context.Background(), search.Request{Query: "test"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Search() error = %v, want %v", err, wantErr)
	}
}

func TestMockClient_Delay(t *testing.T) {
	client := New().
		WithResults(search.Result{Title: "Test", Link: "https://example.com"}).
		WithDelay(50 * time.Millisecond)

	start := time.Now()
	_, err := client.Search(context.Background(), search.Request{Query: "test"})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("Search() took %v, expected at least 50ms", elapsed)
	}
}

func TestMockClient_ContextCancel(t *testing.T) {
	client := New().WithDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, search.Request{Query: "test"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Search() error = %v, want DeadlineExceeded", err)
	}
}

func TestMockClient_CallCount(t *testing.T) {
	client := New()

	for i := 0; i < 3; i++ {
		client.Search(context.Background(), search.Request{Query: "test"})
	}

	if client.Calls() != 3 {
		t.Errorf("CallCount = %d, want 3", client.Calls())
	}

	client.Reset()
	if client.CallCount != 0 || len(client.AllRequests) != 0 {
		t.Error("Reset() did not clear state")
	}
}
