package main

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name            string
		event           string
		wantWarmup      bool
		wantConcurrency int
	}{
		{
			name:            "warmup with concurrency",
			event:           `{"source":"warmup","concurrency":3}`,
			wantWarmup:      true,
			wantConcurrency: 3,
		},
		{
			name:       "warmup without concurrency",
			event:      `{"source":"warmup"}`,
			wantWarmup: true,
		},
		{
			name:       "other source",
			event:      `{"source":"aws.events"}`,
			wantWarmup: false,
		},
		{
			name:       "api gateway request",
			event:      `{"httpMethod":"GET","queryStringParameters":{"text":"hi"}}`,
			wantWarmup: false,
		},
		{
			name:       "not an object",
			event:      `"warmup"`,
			wantWarmup: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmup, ok := IsWarmupEvent(json.RawMessage(tt.event))

			if ok != tt.wantWarmup {
				t.Fatalf("IsWarmupEvent() ok = %v, want %v", ok, tt.wantWarmup)
			}
			if ok && warmup.Concurrency != tt.wantConcurrency {
				t.Errorf("Concurrency = %d, want %d", warmup.Concurrency, tt.wantConcurrency)
			}
		})
	}
}
