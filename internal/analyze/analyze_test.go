package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/alprnalcri/dyslexia-cli/internal/api"
	"github.com/alprnalcri/dyslexia-cli/internal/log"
)

// fakeGateway records calls and returns scripted responses.
type fakeGateway struct {
	prediction  api.Prediction
	classifyErr error

	simplified  string
	simplifyErr error

	saveErr error

	classifyCalls int
	simplifyCalls int
	saved         []api.HistoryEntry
}

func (f *fakeGateway) Classify(ctx context.Context, text string) (api.Prediction, error) {
	f.classifyCalls++
	return f.prediction, f.classifyErr
}

func (f *fakeGateway) Simplify(ctx context.Context, text, method string) (string, error) {
	f.simplifyCalls++
	return f.simplified, f.simplifyErr
}

func (f *fakeGateway) SaveHistory(ctx context.Context, entry api.HistoryEntry) error {
	f.saved = append(f.saved, entry)
	return f.saveErr
}

func TestEmptyTextMakesNoCalls(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		gw := &fakeGateway{}
		r := NewRunner(gw, nil)

		_, err := r.Analyze(context.Background(), text, api.MethodMT5)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("text %q: got %v, want ErrEmptyText", text, err)
		}
		if gw.classifyCalls != 0 || gw.simplifyCalls != 0 || len(gw.saved) != 0 {
			t.Errorf("text %q: expected zero gateway calls", text)
		}
	}
}

func TestEasyTextSkipsSimplify(t *testing.T) {
	gw := &fakeGateway{prediction: api.Prediction{Score: 0.9, Label: api.LabelEasy}}
	r := NewRunner(gw, nil)

	result, err := r.Analyze(context.Background(), "Bu kolay bir metin.", api.MethodMT5)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if gw.simplifyCalls != 0 {
		t.Error("simplify called for an Easy text")
	}
	if result.Simplified != nil {
		t.Error("expected no simplification on the result")
	}
	if len(gw.saved) != 1 {
		t.Fatalf("save calls: got %d, want 1", len(gw.saved))
	}
	if gw.saved[0].Simplified != nil {
		t.Error("saved entry: expected nil Simplified")
	}
}

func TestSimplifyFailureDegradesGracefully(t *testing.T) {
	gw := &fakeGateway{
		prediction:  api.Prediction{Score: 0.2, Label: api.LabelDifficult},
		simplifyErr: errors.New("model unavailable"),
	}
	r := NewRunner(gw, nil)

	result, err := r.Analyze(context.Background(), "zor metin", api.MethodMT5)
	if err != nil {
		t.Fatalf("Analyze must not fail when simplify fails: %v", err)
	}
	if gw.simplifyCalls != 1 {
		t.Errorf("simplify calls: got %d, want 1", gw.simplifyCalls)
	}
	if result.Simplified != nil {
		t.Error("result: expected Simplified absent after a failed simplify")
	}
	if len(gw.saved) != 1 {
		t.Fatalf("save calls: got %d, want 1", len(gw.saved))
	}
	if gw.saved[0].Simplified != nil {
		t.Error("saved entry: expected Simplified null after a failed simplify")
	}
}

func TestEmptySimplificationTreatedAsAbsent(t *testing.T) {
	gw := &fakeGateway{
		prediction: api.Prediction{Score: 0.3, Label: api.LabelDifficult},
		simplified: "   ",
	}
	r := NewRunner(gw, nil)

	result, err := r.Analyze(context.Background(), "zor metin", api.MethodOpenAI)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Simplified != nil {
		t.Error("result: expected a blank simplification to be treated as absent")
	}
}

func TestClassifyFailurePropagatesUnchanged(t *testing.T) {
	gw := &fakeGateway{classifyErr: api.ErrUnauthorized}
	r := NewRunner(gw, nil)

	_, err := r.Analyze(context.Background(), "metin", api.MethodMT5)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("error: got %v, want ErrUnauthorized", err)
	}
	if gw.simplifyCalls != 0 || len(gw.saved) != 0 {
		t.Error("no further steps may run after a failed classify")
	}
}

func TestSaveFailurePropagates(t *testing.T) {
	saveErr := &api.RequestError{Status: 500, Detail: "Save error"}
	gw := &fakeGateway{
		prediction: api.Prediction{Score: 0.2, Label: api.LabelDifficult},
		simplified: "basit",
		saveErr:    saveErr,
	}
	r := NewRunner(gw, nil)

	_, err := r.Analyze(context.Background(), "zor metin", api.MethodMT5)
	if err == nil {
		t.Fatal("expected Analyze to fail when save fails")
	}
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 500 {
		t.Errorf("error: got %v, want the save *RequestError", err)
	}
}

func TestSimplifyFailureIsLogged(t *testing.T) {
	logger, err := log.NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	gw := &fakeGateway{
		prediction:  api.Prediction{Score: 0.1, Label: api.LabelDifficult},
		simplifyErr: errors.New("timeout"),
	}
	r := NewRunner(gw, logger)

	if _, err := r.Analyze(context.Background(), "zor metin", api.MethodMT5); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	var degraded bool
	for _, e := range events {
		if e.Event == log.EventSimplifyDegraded {
			degraded = true
			if e.Error != "timeout" {
				t.Errorf("degraded event error: got %q, want timeout", e.Error)
			}
		}
	}
	if !degraded {
		t.Error("expected a simplify_degraded event in the log")
	}
}

func TestDifficultTextEndToEnd(t *testing.T) {
	gw := &fakeGateway{
		prediction: api.Prediction{Score: 0.2, Label: api.LabelDifficult},
		simplified: "Bu metin basit.",
	}
	r := NewRunner(gw, nil)

	text := "Bu metin çok karmaşık ve anlaşılması güç."
	result, err := r.Analyze(context.Background(), text, api.MethodMT5)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Text != text {
		t.Errorf("Text: got %q", result.Text)
	}
	if result.Score != 0.2 || result.Label != api.LabelDifficult {
		t.Errorf("classification: got %.2f/%s", result.Score, result.Label)
	}
	if result.Simplified == nil || *result.Simplified != "Bu metin basit." {
		t.Fatalf("Simplified: got %v", result.Simplified)
	}

	if len(gw.saved) != 1 {
		t.Fatalf("save calls: got %d, want 1", len(gw.saved))
	}
	saved := gw.saved[0]
	if saved.Text != text || saved.Score != 0.2 || saved.Label != api.LabelDifficult {
		t.Errorf("saved entry: got %+v", saved)
	}
	if saved.Simplified == nil || *saved.Simplified != "Bu metin basit." {
		t.Errorf("saved Simplified: got %v", saved.Simplified)
	}
}
