package metrics

import (
	"testing"
)

func TestEncoderMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"EncoderInvocationsTotal", EncoderInvocationsTotal},
		{"EncoderDuration", EncoderDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSearchMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"SearchesTotal", SearchesTotal},
		{"SearchDuration", SearchDuration},
		{"StrategiesGeneratedTotal", StrategiesGeneratedTotal},
		{"CandidatesProducedTotal", CandidatesProducedTotal},
		{"ArtifactsReleasedTotal", ArtifactsReleasedTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}
