package services_test

import (
	"context"
	"testing"

	"vimdl/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithTrack(ctx, "audio")
	ctx = services.WithStage(ctx, "assemble")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if track, ok := services.TrackFromContext(ctx); !ok || track != "audio" {
		t.Fatalf("unexpected track: %v %v", track, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "assemble" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithTrack(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.TrackFromContext(ctx); ok {
		t.Fatal("expected no track value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
}
