package upstream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
)

func TestResult_Or(t *testing.T) {
	ok := upstream.Result[[]int]{Value: []int{1, 2}}
	v, fellBack := ok.Or([]int{9})
	if fellBack || len(v) != 2 || !ok.OK() {
		t.Errorf("expected value to be used, got %v fallback=%v", v, fellBack)
	}

	failed := upstream.Result[[]int]{Err: errors.New("boom")}
	v, fellBack = failed.Or([]int{9})
	if !fellBack || len(v) != 1 || v[0] != 9 || failed.OK() {
		t.Errorf("expected fallback to be used, got %v fallback=%v", v, fellBack)
	}
}

func TestFetch(t *testing.T) {
	res := upstream.Fetch(context.Background(), func(context.Context) (string, error) {
		return "ok", nil
	})
	if !res.OK() || res.Value != "ok" {
		t.Errorf("unexpected result %+v", res)
	}

	wantErr := errors.New("down")
	res = upstream.Fetch(context.Background(), func(context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(res.Err, wantErr) {
		t.Errorf("expected captured error, got %v", res.Err)
	}
}
