package knowledge

import "fmt"

type typeRule struct {
	name  string
	match func(props map[string]any) bool
}

func hasAny(keys ...string) func(map[string]any) bool {
	return func(props map[string]any) bool {
		for _, k := range keys {
			if _, ok := props[k]; ok {
				return true
			}
		}
		return false
	}
}

func hasAll(keys ...string) func(map[string]any) bool {
	return func(props map[string]any) bool {
		for _, k := range keys {
			if _, ok := props[k]; !ok {
				return false
			}
		}
		return true
	}
}

var typeRules = []typeRule{
	{"Skill", hasAny("level", "proficiency")},
	{"Experience", hasAny("company", "role")},
	{"Project", hasAll("start_date", "end_date")},
	{"Person", hasAny("email", "phone")},
	{"Company", hasAny("industry", "size")},
	{"Education", hasAny("degree", "university")},
}

// InferType names the kind of node from its properties. An explicit "type"
// property always wins.
func InferType(props map[string]any) string {
	if len(props) == 0 {
		return "Unknown"
	}
	if t, ok := props["type"]; ok && t != nil {
		return fmt.Sprint(t)
	}
	for _, rule := range typeRules {
		if rule.match(props) {
			return rule.name
		}
	}
	return "Entity"
}
