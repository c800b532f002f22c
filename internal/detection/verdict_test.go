package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proctor_guard_backend/internal/model"
)

func TestClassifyFaceCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  Verdict
	}{
		{
			name:  "zero faces raises warning",
			count: 0,
			want: Verdict{
				Alert:         true,
				Reason:        "No face detected",
				Severity:      model.SeverityWarning,
				ViolationType: ViolationNoFace,
			},
		},
		{
			name:  "one face is clean",
			count: 1,
			want:  Verdict{},
		},
		{
			name:  "two faces raises critical",
			count: 2,
			want: Verdict{
				Alert:         true,
				Reason:        "Multiple faces detected",
				Severity:      model.SeverityCritical,
				ViolationType: ViolationMultipleFaces,
			},
		},
		{
			name:  "many faces still critical",
			count: 5,
			want: Verdict{
				Alert:         true,
				Reason:        "Multiple faces detected",
				Severity:      model.SeverityCritical,
				ViolationType: ViolationMultipleFaces,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFaceCount(tt.count))
		})
	}
}

func TestLookupViolation(t *testing.T) {
	t.Run("client events map to critical", func(t *testing.T) {
		for violationType, wantReason := range map[string]string{
			ViolationLeftFullscreen: "Left fullscreen mode",
			ViolationSwitchedTab:    "Switched tab or window",
			ViolationWindowBlur:     "Window lost focus",
		} {
			verdict, ok := LookupViolation(violationType)
			require.True(t, ok, violationType)
			assert.True(t, verdict.Alert)
			assert.Equal(t, model.SeverityCritical, verdict.Severity)
			assert.Equal(t, wantReason, verdict.Reason)
			assert.Equal(t, violationType, verdict.ViolationType)
		}
	})

	t.Run("face types present in the same table", func(t *testing.T) {
		verdict, ok := LookupViolation(ViolationNoFace)
		require.True(t, ok)
		assert.Equal(t, model.SeverityWarning, verdict.Severity)

		verdict, ok = LookupViolation(ViolationMultipleFaces)
		require.True(t, ok)
		assert.Equal(t, model.SeverityCritical, verdict.Severity)
	})

	t.Run("unrecognized type is not silently classified", func(t *testing.T) {
		verdict, ok := LookupViolation("phone_detected")
		assert.False(t, ok)
		assert.Equal(t, Verdict{}, verdict)
	})
}
