package media

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	unifiedgenai "google.golang.org/genai"
)

// fakeVideoOps is a scriptable videoOperations counting submit/poll calls.
type fakeVideoOps struct {
	submits int
	polls   int
	submit  func(prompt string, image *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error)
	poll    func(poll int, op *unifiedgenai.GenerateVideosOperation) (*unifiedgenai.GenerateVideosOperation, error)
}

func (f *fakeVideoOps) GenerateVideos(_ context.Context, _, prompt string, image *unifiedgenai.Image, _ *unifiedgenai.GenerateVideosConfig) (*unifiedgenai.GenerateVideosOperation, error) {
	f.submits++
	return f.submit(prompt, image)
}

func (f *fakeVideoOps) GetVideosOperation(_ context.Context, op *unifiedgenai.GenerateVideosOperation, _ *unifiedgenai.GetOperationConfig) (*unifiedgenai.GenerateVideosOperation, error) {
	f.polls++
	return f.poll(f.polls, op)
}

func pendingOperation() *unifiedgenai.GenerateVideosOperation {
	return &unifiedgenai.GenerateVideosOperation{Name: "operations/video-1"}
}

func doneOperation(uri string) *unifiedgenai.GenerateVideosOperation {
	return &unifiedgenai.GenerateVideosOperation{
		Name: "operations/video-1",
		Done: true,
		Response: &unifiedgenai.GenerateVideosResponse{
			GeneratedVideos: []*unifiedgenai.GeneratedVideo{
				{Video: &unifiedgenai.Video{URI: uri}},
			},
		},
	}
}

func TestGenerate_CompletedAfterPolling(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
		poll: func(poll int, op *unifiedgenai.GenerateVideosOperation) (*unifiedgenai.GenerateVideosOperation, error) {
			if poll < 2 {
				return pendingOperation(), nil
			}
			return doneOperation("https://cdn.example.com/video.mp4"), nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	url, err := c.Generate(context.Background(), "a wolf", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/video.mp4" {
		t.Errorf("url = %q", url)
	}
	if fake.polls != 2 {
		t.Errorf("expected 2 polls, got %d", fake.polls)
	}
}

// TestGenerate_PollBoundExhausted asserts the poll loop gives up after
// maxPollAttempts instead of waiting forever on an operation that never
// finishes.
func TestGenerate_PollBoundExhausted(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
		poll: func(int, *unifiedgenai.GenerateVideosOperation) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 3)

	_, err := c.Generate(context.Background(), "a wolf", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "did not finish within 3 poll attempts") {
		t.Errorf("unexpected error: %v", err)
	}
	if fake.polls != 3 {
		t.Errorf("expected exactly 3 polls before giving up, got %d", fake.polls)
	}
}

func TestGenerate_ProviderReportedFailure(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
		poll: func(int, *unifiedgenai.GenerateVideosOperation) (*unifiedgenai.GenerateVideosOperation, error) {
			return &unifiedgenai.GenerateVideosOperation{
				Name:  "operations/video-1",
				Done:  true,
				Error: map[string]any{"code": 13, "message": "render failed"},
			}, nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	_, err := c.Generate(context.Background(), "a wolf", nil)
	if err == nil {
		t.Fatal("expected provider failure to propagate")
	}
	if !strings.Contains(err.Error(), "failed") || !strings.Contains(err.Error(), "render failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_SubmitFailure(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return nil, fmt.Errorf("quota exceeded")
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	_, err := c.Generate(context.Background(), "a wolf", nil)
	if err == nil {
		t.Fatal("expected submission error")
	}
	if !strings.Contains(err.Error(), "submission failed") {
		t.Errorf("unexpected error: %v", err)
	}
	if fake.polls != 0 {
		t.Errorf("no polls expected after failed submit, got %d", fake.polls)
	}
}

func TestGenerate_DoneOnSubmitSkipsPolling(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return doneOperation("https://cdn.example.com/fast.mp4"), nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	url, err := c.Generate(context.Background(), "a wolf", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/fast.mp4" {
		t.Errorf("url = %q", url)
	}
	if fake.polls != 0 {
		t.Errorf("expected 0 polls, got %d", fake.polls)
	}
}

func TestGenerate_CompletedWithoutOutput(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return &unifiedgenai.GenerateVideosOperation{Name: "operations/video-1", Done: true}, nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	_, err := c.Generate(context.Background(), "a wolf", nil)
	if err == nil {
		t.Fatal("expected error for empty terminal operation")
	}
	if !strings.Contains(err.Error(), "no output") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_CanceledWhileWaiting(t *testing.T) {
	fake := &fakeVideoOps{
		submit: func(string, *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
		poll: func(int, *unifiedgenai.GenerateVideosOperation) (*unifiedgenai.GenerateVideosOperation, error) {
			return pendingOperation(), nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Hour, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, "a wolf", nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !strings.Contains(err.Error(), "canceled") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_StartFrameForwarded(t *testing.T) {
	var gotImage *unifiedgenai.Image
	fake := &fakeVideoOps{
		submit: func(_ string, image *unifiedgenai.Image) (*unifiedgenai.GenerateVideosOperation, error) {
			gotImage = image
			return doneOperation("https://cdn.example.com/video.mp4"), nil
		},
	}
	c := newVideoClient(fake, "veo-test", time.Millisecond, 10)

	_, err := c.Generate(context.Background(), "a wolf", &GeneratedImage{Data: []byte("png"), MimeType: "image/png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotImage == nil {
		t.Fatal("start frame not forwarded to submission")
	}
	if gotImage.MIMEType != "image/png" || string(gotImage.ImageBytes) != "png" {
		t.Errorf("start frame = %+v", gotImage)
	}
}
