package request

import (
	"testing"
)

func TestAssessRiskRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request AssessRiskRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid request",
			request: AssessRiskRequest{
				Prompt:        "a quiet forest",
				Type:          "image",
				EstimatedCost: 1.0,
			},
			wantErr: false,
		},
		{
			name: "Valid with classifier enabled",
			request: AssessRiskRequest{
				Prompt:        "a quiet forest",
				Type:          "video",
				EstimatedCost: 2.5,
				UseClassifier: true,
			},
			wantErr: false,
		},
		{
			name: "Valid with zero cost",
			request: AssessRiskRequest{
				Prompt: "a quiet forest",
				Type:   "image",
			},
			wantErr: false,
		},
		{
			name: "Missing prompt",
			request: AssessRiskRequest{
				Type: "image",
			},
			wantErr: true,
			errMsg:  "prompt is required",
		},
		{
			name: "Unsupported type",
			request: AssessRiskRequest{
				Prompt: "a quiet forest",
				Type:   "audio",
			},
			wantErr: true,
			errMsg:  "type must be 'image' or 'video'",
		},
		{
			name: "Negative estimated cost",
			request: AssessRiskRequest{
				Prompt:        "a quiet forest",
				Type:          "image",
				EstimatedCost: -1.0,
			},
			wantErr: true,
			errMsg:  "estimated_cost must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("AssessRiskRequest.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("AssessRiskRequest.Validate() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
