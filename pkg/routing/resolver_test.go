package routing

import (
	"context"
	"errors"
	"testing"

	"mercator-hq/janus/pkg/bindings"
)

const (
	testDevHost    = "dev.internal.example.com"
	testStableHost = "stable.internal.example.com"
)

// stubDetector returns a fixed detection result and records invocations.
type stubDetector struct {
	env    bindings.Environment
	ok     bool
	called int
}

func (d *stubDetector) Detect(_ context.Context, _ string) (bindings.Environment, bool) {
	d.called++
	return d.env, d.ok
}

// failingStore returns an error on every Get.
type failingStore struct {
	bindings.Store
}

func (failingStore) Get(context.Context, string) (bindings.Environment, bool, error) {
	return "", false, errors.New("kv unavailable")
}

func newTestResolver(store bindings.Store, det Detector, opts Options) *Resolver {
	return NewResolver(store, det, testDevHost, testStableHost, opts, nil)
}

func TestResolve_BindingWins(t *testing.T) {
	ctx := context.Background()
	store := bindings.NewMemoryStore()
	if err := store.Put(ctx, "acme", bindings.EnvDev); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Detector would say stable; the binding must win regardless of the
	// auto-detection setting.
	det := &stubDetector{env: bindings.EnvStable, ok: true}
	r := newTestResolver(store, det, Options{DefaultEnvironment: bindings.EnvStable, AutoDetect: true})

	d, err := r.Resolve(ctx, "acme")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Env != bindings.EnvDev || d.Source != SourceBinding {
		t.Errorf("decision = {%s %s}, want {dev binding}", d.Env, d.Source)
	}
	if d.OriginHost != testDevHost {
		t.Errorf("origin host = %q, want %q", d.OriginHost, testDevHost)
	}
	if det.called != 0 {
		t.Errorf("detector invoked %d times for a bound tenant", det.called)
	}
}

func TestResolve_DetectionPersistsAndWins(t *testing.T) {
	ctx := context.Background()
	store := bindings.NewMemoryStore()
	det := &stubDetector{env: bindings.EnvDev, ok: true}
	r := newTestResolver(store, det, Options{DefaultEnvironment: bindings.EnvStable, AutoDetect: true})

	d, err := r.Resolve(ctx, "acme")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Env != bindings.EnvDev || d.Source != SourceDetected {
		t.Errorf("decision = {%s %s}, want {dev detected}", d.Env, d.Source)
	}

	// The detected result must have been written through to the store.
	env, ok, err := store.Get(ctx, "acme")
	if err != nil || !ok || env != bindings.EnvDev {
		t.Errorf("store after detection: env=%q ok=%v err=%v, want dev binding", env, ok, err)
	}

	// The next request hits the binding, not the detector.
	d2, err := r.Resolve(ctx, "acme")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if d2.Source != SourceBinding {
		t.Errorf("second decision source = %s, want binding", d2.Source)
	}
	if det.called != 1 {
		t.Errorf("detector invoked %d times, want 1", det.called)
	}
}

func TestResolve_AmbiguousDetectionFallsBackWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	store := bindings.NewMemoryStore()
	det := &stubDetector{ok: false}
	r := newTestResolver(store, det, Options{DefaultEnvironment: bindings.EnvStable, AutoDetect: true})

	d, err := r.Resolve(ctx, "acme")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Env != bindings.EnvStable || d.Source != SourceDefault {
		t.Errorf("decision = {%s %s}, want {stable default}", d.Env, d.Source)
	}
	if _, ok, _ := store.Get(ctx, "acme"); ok {
		t.Error("ambiguous detection must not persist a binding")
	}
}

func TestResolve_AutoDetectDisabledUsesDefault(t *testing.T) {
	ctx := context.Background()
	det := &stubDetector{env: bindings.EnvDev, ok: true}
	r := newTestResolver(bindings.NewMemoryStore(), det, Options{DefaultEnvironment: bindings.EnvDev})

	d, err := r.Resolve(ctx, "acme")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Env != bindings.EnvDev || d.Source != SourceDefault {
		t.Errorf("decision = {%s %s}, want {dev default}", d.Env, d.Source)
	}
	if det.called != 0 {
		t.Error("detector must not run when auto-detection is disabled")
	}
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	r := newTestResolver(failingStore{}, nil, Options{DefaultEnvironment: bindings.EnvStable})

	if _, err := r.Resolve(context.Background(), "acme"); err == nil {
		t.Error("expected error when the store is unavailable")
	}
}

func TestSetOptions_SwapsAtomically(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(bindings.NewMemoryStore(), nil, Options{DefaultEnvironment: bindings.EnvStable})

	d, _ := r.Resolve(ctx, "acme")
	if d.Env != bindings.EnvStable {
		t.Fatalf("initial default = %s, want stable", d.Env)
	}

	r.SetOptions(Options{DefaultEnvironment: bindings.EnvDev})

	d, _ = r.Resolve(ctx, "acme")
	if d.Env != bindings.EnvDev {
		t.Errorf("default after SetOptions = %s, want dev", d.Env)
	}
}
