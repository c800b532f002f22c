package detection

import "proctor_guard_backend/internal/model"

// 违规类型标签
const (
	ViolationNoFace         = "no_face_detected"
	ViolationMultipleFaces  = "multiple_faces_detected"
	ViolationLeftFullscreen = "left_fullscreen"
	ViolationSwitchedTab    = "switched_tab"
	ViolationWindowBlur     = "window_blur"
)

// DefaultReason 未登记违规类型且调用方没给 reason 时的兜底文案
const DefaultReason = "Violation detected"

// Verdict 违规分类结论。Alert 为 false 时其余字段为空。
type Verdict struct {
	Alert         bool   `json:"alert"`
	Reason        string `json:"reason,omitempty"`
	Severity      string `json:"severity,omitempty"`
	ViolationType string `json:"violation_type,omitempty"`
}

type catalogEntry struct {
	Reason   string
	Severity string
}

// violationCatalog 违规类型 -> 文案与严重级别。
// severity 判定的唯一事实来源，新增违规类型只在这里登记。
var violationCatalog = map[string]catalogEntry{
	ViolationNoFace:         {Reason: "No face detected", Severity: model.SeverityWarning},
	ViolationMultipleFaces:  {Reason: "Multiple faces detected", Severity: model.SeverityCritical},
	ViolationLeftFullscreen: {Reason: "Left fullscreen mode", Severity: model.SeverityCritical},
	ViolationSwitchedTab:    {Reason: "Switched tab or window", Severity: model.SeverityCritical},
	ViolationWindowBlur:     {Reason: "Window lost focus", Severity: model.SeverityCritical},
}

// ClassifyFaceCount 按一帧里检测到的人脸数量给出结论：
// 0 张脸告警（warning），恰好 1 张不告警，2 张以上告警（critical）。
func ClassifyFaceCount(count int) Verdict {
	switch {
	case count == 0:
		return verdictFor(ViolationNoFace)
	case count == 1:
		return Verdict{}
	default:
		return verdictFor(ViolationMultipleFaces)
	}
}

// LookupViolation 客户端上报事件的查表结论。未登记的类型返回 ok=false，
// fallback 策略由调用方决定。
func LookupViolation(violationType string) (Verdict, bool) {
	entry, ok := violationCatalog[violationType]
	if !ok {
		return Verdict{}, false
	}
	return Verdict{
		Alert:         true,
		Reason:        entry.Reason,
		Severity:      entry.Severity,
		ViolationType: violationType,
	}, true
}

func verdictFor(violationType string) Verdict {
	entry := violationCatalog[violationType]
	return Verdict{
		Alert:         true,
		Reason:        entry.Reason,
		Severity:      entry.Severity,
		ViolationType: violationType,
	}
}
