package orchestrator

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/luthadel/engine/core"
)

type fakeBackend struct {
	frameNumber      uint64
	beginCalls       int
	endCalls         int
	resizedCalls     int
	lastResizeWidth  uint32
	lastResizeHeight uint32
	beginErr         error
}

func (f *fakeBackend) IncrementFrameNumber() uint64 {
	f.frameNumber++
	return f.frameNumber
}

func (f *fakeBackend) BeginFrame(deltaTime float64) error {
	f.beginCalls++
	return f.beginErr
}

func (f *fakeBackend) EndFrame(deltaTime float64) error {
	f.endCalls++
	return nil
}

func (f *fakeBackend) CurrentWindowAttachmentIndex() uint64 { return 0 }

func (f *fakeBackend) Resized(width, height uint32) error {
	f.resizedCalls++
	f.lastResizeWidth, f.lastResizeHeight = width, height
	return nil
}

type countingStage struct {
	name string
	runs int
	err  error
}

func (s *countingStage) Name() string { return s.name }
func (s *countingStage) Run(frameNumber, windowAttachmentIndex uint64) error {
	s.runs++
	return s.err
}

// S1: an empty scene over 3 frames calls begin/end exactly 3 times each,
// and every registered stage runs exactly once per frame.
func TestOrchestratorRunsEveryStageOncePerFrame(t *testing.T) {
	backend := &fakeBackend{}
	orch := New(backend, nil)

	world := &countingStage{name: "world"}
	ui := &countingStage{name: "ui"}
	orch.Use(world)
	orch.Use(ui)

	for i := 0; i < 3; i++ {
		if err := orch.RenderFrame(0.016); err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
	}

	if backend.beginCalls != 3 || backend.endCalls != 3 {
		t.Fatalf("begin/end calls = %d/%d, want 3/3", backend.beginCalls, backend.endCalls)
	}
	if world.runs != 3 || ui.runs != 3 {
		t.Fatalf("stage runs = world:%d ui:%d, want 3/3", world.runs, ui.runs)
	}
}

func TestOrchestratorStagesRunInRegisteredOrder(t *testing.T) {
	backend := &fakeBackend{}
	orch := New(backend, nil)

	var order []string
	orch.Use(NewStage("shadow", func(uint64, uint64) error {
		order = append(order, "shadow")
		return nil
	}))
	orch.Use(NewStage("world", func(uint64, uint64) error {
		order = append(order, "world")
		return nil
	}))
	orch.Use(NewStage("ui", func(uint64, uint64) error {
		order = append(order, "ui")
		return nil
	}))

	if err := orch.RenderFrame(0.016); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	want := []string{"shadow", "world", "ui"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// A swapchain-booting error from BeginFrame must be treated as "skip this
// frame, no error" — stages never run and EndFrame is never called.
func TestOrchestratorSkipsFrameOnSwapchainBooting(t *testing.T) {
	backend := &fakeBackend{beginErr: core.ErrSwapchainBooting}
	orch := New(backend, nil)

	stage := &countingStage{name: "world"}
	orch.Use(stage)

	if err := orch.RenderFrame(0.016); err != nil {
		t.Fatalf("expected a silently skipped frame, got error: %v", err)
	}
	if stage.runs != 0 {
		t.Fatalf("stages must not run when the frame is skipped")
	}
	if backend.endCalls != 0 {
		t.Fatalf("EndFrame must not be called when BeginFrame skips the frame")
	}
}

// Any other BeginFrame failure is fatal and must propagate.
func TestOrchestratorPropagatesFatalBeginFrameError(t *testing.T) {
	wantErr := errors.New("device lost")
	backend := &fakeBackend{beginErr: wantErr}
	orch := New(backend, nil)

	if err := orch.RenderFrame(0.016); !errors.Is(err, wantErr) {
		t.Fatalf("RenderFrame error = %v, want %v", err, wantErr)
	}
}

// A stage failure stops the frame and propagates, without calling EndFrame.
func TestOrchestratorPropagatesStageError(t *testing.T) {
	backend := &fakeBackend{}
	orch := New(backend, nil)

	wantErr := errors.New("draw failed")
	orch.Use(NewStage("broken", func(uint64, uint64) error { return wantErr }))

	if err := orch.RenderFrame(0.016); !errors.Is(err, wantErr) {
		t.Fatalf("RenderFrame error = %v, want %v", err, wantErr)
	}
	if backend.endCalls != 0 {
		t.Fatalf("EndFrame must not be called after a stage failure")
	}
}

// A pending resize settles only after resizeSettleFrames frames without a
// further resize request, then the backend is resized and onResize fires.
func TestOrchestratorResizeSettlesAfterDebounce(t *testing.T) {
	backend := &fakeBackend{}
	var resizedTo [2]uint32
	orch := New(backend, func(w, h uint32) { resizedTo = [2]uint32{w, h} })

	orch.RequestResize(1600, 900)

	for i := 0; i < resizeSettleFrames-1; i++ {
		if err := orch.RenderFrame(0.016); err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if backend.resizedCalls != 0 {
			t.Fatalf("resize fired early, after %d frames", i+1)
		}
	}

	if err := orch.RenderFrame(0.016); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if backend.resizedCalls != 1 {
		t.Fatalf("expected exactly one Resized call once the debounce settles, got %d", backend.resizedCalls)
	}
	if resizedTo != [2]uint32{1600, 900} {
		t.Fatalf("onResize callback received %v, want [1600 900]", resizedTo)
	}
}
