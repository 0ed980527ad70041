package domain

import "testing"

func TestApplicationTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  ApplicationTarget
		wantErr error
	}{
		{"event with job", ApplicationTarget{Kind: TargetKindEvent, EventID: "ev-1", JobID: "job-1"}, nil},
		{"event without job", ApplicationTarget{Kind: TargetKindEvent, EventID: "ev-1"}, nil},
		{"event without event id", ApplicationTarget{Kind: TargetKindEvent, JobID: "job-1"}, ErrInvalidTarget},
		{"foodbank job", ApplicationTarget{Kind: TargetKindFoodbankJob, FoodbankID: "fb-1", JobID: "job-1"}, nil},
		{"foodbank job without job id", ApplicationTarget{Kind: TargetKindFoodbankJob, FoodbankID: "fb-1"}, ErrInvalidTarget},
		{"foodbank job without foodbank id", ApplicationTarget{Kind: TargetKindFoodbankJob, JobID: "job-1"}, ErrInvalidTarget},
		{"unknown kind", ApplicationTarget{Kind: TargetKind("committee"), EventID: "ev-1"}, ErrInvalidTarget},
		{"empty", ApplicationTarget{}, ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.target.Validate(); err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
