package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		want  string
		ok    bool
	}{
		{"acquired advances to in_service", StageAcquired, StageInService, true},
		{"in_service advances to ready_for_sale", StageInService, StageReadyForSale, true},
		{"ready_for_sale advances to sold", StageReadyForSale, StageSold, true},
		{"sold has no next stage", StageSold, "", false},
		{"unknown stage has no next stage", "detailing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextStage(tt.stage)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidStage(t *testing.T) {
	for _, stage := range StageOrder {
		assert.True(t, IsValidStage(stage), stage)
	}
	assert.False(t, IsValidStage(""))
	assert.False(t, IsValidStage("archived"))
	assert.False(t, IsValidStage(EventTypeSocialPost))
}

func TestStageSuggestedActions(t *testing.T) {
	for _, stage := range StageOrder {
		assert.NotEmpty(t, StageSuggestedActions[stage], stage)
	}
	assert.Empty(t, StageSuggestedActions["unknown"])
}

func TestIsValidPlatform(t *testing.T) {
	for _, platform := range Platforms {
		assert.True(t, IsValidPlatform(platform), platform)
	}
	assert.False(t, IsValidPlatform("tiktok"))
}
