package coursegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/yungbote/coursegen-backend/internal/domain"
)

var (
	courseRequired = []string{"title", "description", "modules"}
	lessonRequired = []string{"title", "content"}
)

// ValidateCourse checks the minimum course shape on a parsed JSON value:
// title, description and a non-empty modules list whose entries each carry a
// title and at least one lesson. Lesson stubs and optional fields are not
// inspected. The first defect found is reported.
func ValidateCourse(v any) error {
	obj := asObject(v)
	if missing := missingFields(obj, courseRequired); len(missing) > 0 {
		return courseStructureErrorf("Course data missing required fields: %s", strings.Join(missing, ", "))
	}
	modules, ok := obj["modules"].([]any)
	if !ok || len(modules) == 0 {
		return courseStructureErrorf("Course must have at least one module")
	}
	for i, raw := range modules {
		m := asObject(raw)
		if !truthy(m["title"]) {
			return courseStructureErrorf("Module %d missing title", i)
		}
		lessons, ok := m["lessons"].([]any)
		if !ok || len(lessons) == 0 {
			return courseStructureErrorf("Module \"%s\" must have at least one lesson", jsString(m["title"]))
		}
	}
	return nil
}

// ValidateLesson checks title, a non-empty content list, and that every
// block's type is one of domain.BlockTypes. Variant fields are not checked.
func ValidateLesson(v any) error {
	obj := asObject(v)
	if missing := missingFields(obj, lessonRequired); len(missing) > 0 {
		return lessonStructureErrorf("Lesson data missing required fields: %s", strings.Join(missing, ", "))
	}
	content, ok := obj["content"].([]any)
	if !ok || len(content) == 0 {
		return lessonStructureErrorf("Lesson must have at least one content block")
	}
	for i, raw := range content {
		b := asObject(raw)
		if !truthy(b["type"]) {
			return lessonStructureErrorf("Content block %d missing type", i)
		}
		t, _ := b["type"].(string)
		if !domain.BlockType(t).Valid() {
			return lessonStructureErrorf("Invalid content block type: %s", jsString(b["type"]))
		}
	}
	return nil
}

// asObject returns v as a JSON object. Any other value reads as an object
// with no fields.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func missingFields(obj map[string]any, fields []string) []string {
	var missing []string
	for _, f := range fields {
		if !truthy(obj[f]) {
			missing = append(missing, f)
		}
	}
	return missing
}

// truthy treats absent, null, false, 0 and "" as missing. Empty arrays and
// objects count as present.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// jsString renders a decoded JSON value the way it reads when interpolated
// into a message.
func jsString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return jsNumber(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = jsString(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// jsNumber formats like Number.prototype.toString: plain decimals for
// 1e-6 <= |x| < 1e21, otherwise shortest exponent form without exponent
// padding ("1e+21", "1.5e-7").
func jsNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	if abs := math.Abs(x); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
