package facts

import (
	"regexp"
	"strings"
)

// FactType is the kind of claim a pattern detects.
type FactType string

const (
	FactFoundingYear     FactType = "founding_year"
	FactFounders         FactType = "founders"
	FactHeadquarters     FactType = "headquarters"
	FactCEO              FactType = "ceo"
	FactEmployeeCount    FactType = "employee_count"
	FactMission          FactType = "mission"
	FactRevenue          FactType = "revenue"
	FactProduct          FactType = "product"
	FactAcquisition      FactType = "acquisition"
	FactInterviewProcess FactType = "interview_process"
	FactCultureClaim     FactType = "culture_claim"
	FactOther            FactType = "other"
)

// Priority is how urgently a reviewer should verify a fact type.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// FactTypes lists every type in checklist order.
var FactTypes = []FactType{
	FactFoundingYear,
	FactFounders,
	FactHeadquarters,
	FactCEO,
	FactMission,
	FactEmployeeCount,
	FactRevenue,
	FactProduct,
	FactAcquisition,
	FactInterviewProcess,
	FactCultureClaim,
	FactOther,
}

var priorities = map[FactType]Priority{
	FactFoundingYear:     PriorityHigh,
	FactFounders:         PriorityHigh,
	FactHeadquarters:     PriorityHigh,
	FactCEO:              PriorityHigh,
	FactMission:          PriorityHigh,
	FactEmployeeCount:    PriorityMedium,
	FactRevenue:          PriorityMedium,
	FactProduct:          PriorityMedium,
	FactAcquisition:      PriorityMedium,
	FactInterviewProcess: PriorityLow,
	FactCultureClaim:     PriorityLow,
	FactOther:            PriorityLow,
}

// PriorityOf returns the review priority of a fact type.
func PriorityOf(t FactType) Priority {
	if p, ok := priorities[t]; ok {
		return p
	}
	return PriorityLow
}

// Building blocks shared by several patterns. Name parts are case-sensitive
// so that only capitalised words are taken as names.
const (
	namePart  = `[A-Z][a-zA-Z'’-]+`
	name      = namePart + `(?:\s+` + namePart + `){0,3}`
	nameList  = name + `(?:(?:\s*,\s*and\s+|\s*,\s*|\s+and\s+|\s*&\s*)` + name + `)*`
	placePart = `[A-Z][a-zA-Z'’-]*`
	place     = placePart + `(?:(?:\s+|,\s*)` + placePart + `){0,4}`
	orgName   = `[A-Z][A-Za-z0-9&'’-]*(?:\s+[A-Z][A-Za-z0-9&'’-]*){0,3}`
	money     = `\$\s?\d+(?:[.,]\d+)*\s*(?:trillion|billion|million|[TBMK]\b)?`
	clause    = `([^.\n]{5,150})`
)

// markdownField matches the "**Label:** value" form generated modules use.
func markdownField(labels string) string {
	return `\*\*(?i:` + labels + `)\s*:?\*\*\s*:?\s*([^\n*]+)`
}

// pattern is one way of phrasing a fact; extract pulls the value out of
// the submatches.
type pattern struct {
	expr    *regexp.Regexp
	extract func(groups []string) string
}

func firstGroup(groups []string) string {
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}

func newPattern(expr string) pattern {
	return pattern{expr: regexp.MustCompile(expr), extract: firstGroup}
}

// rule binds a fact type to its patterns.
type rule struct {
	factType FactType
	patterns []pattern
}

// rules is the fact pattern library. Compiled expressions are immutable and
// every scan walks them with FindAllStringSubmatchIndex, so no matcher state
// leaks between scans.
var rules = []rule{
	{
		factType: FactFoundingYear,
		patterns: []pattern{
			newPattern(`(?i)\b(?:founded|co-founded|established|started|incorporated|launched)\s+(?:in\s+)?(\d{4})\b`),
			newPattern(markdownField(`founded|year founded|established`)),
		},
	},
	{
		factType: FactFounders,
		patterns: []pattern{
			newPattern(`(?i:founded|co-founded|started|established|created)\s+(?:(?i:in)\s+\d{4}\s+)?(?i:by)\s+(` + nameList + `)`),
			newPattern(`(?i:founders?|co-founders?)\s*(?:(?i:are|were|include|included)\s+|:\s*)(` + nameList + `)`),
			newPattern(markdownField(`founders?|co-founders?|founded by`)),
		},
	},
	{
		factType: FactHeadquarters,
		patterns: []pattern{
			newPattern(`(?i:headquartered|based)\s+(?i:in)\s+(` + place + `)`),
			newPattern(`(?i:headquarters)\s+(?i:is|are)\s+(?i:located\s+)?(?i:in)\s+(` + place + `)`),
			newPattern(markdownField(`headquarters|hq|location`)),
		},
	},
	{
		factType: FactCEO,
		patterns: []pattern{
			newPattern(`\b(?i:ceo|chief executive officer|chief executive)(?:\s+(?i:of)\s+` + orgName + `)?(?:\s*[:,]\s*|\s+(?i:is|was)\s+)(` + name + `)`),
			newPattern(`(` + name + `)\s+(?i:is|was)\s+(?i:the\s+)?(?i:current\s+)?(?i:ceo|chief executive)\b`),
			newPattern(`(` + name + `),\s+(?:the\s+)?(?:company's\s+)?(?i:ceo|chief executive)`),
			newPattern(`(?i:led by)\s+(?:(?i:ceo)\s+)?(` + name + `)`),
			newPattern(markdownField(`ceo|chief executive officer`)),
		},
	},
	{
		factType: FactEmployeeCount,
		patterns: []pattern{
			newPattern(`(?i)(?:over|more than|approximately|about|around|nearly|roughly)?\s*(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?(?:\s*(?:k|thousand|million))?)\+?\s+(?:full-time\s+)?(?:employees|staff|people|workers)\b`),
			newPattern(markdownField(`employees|employee count|headcount`)),
		},
	},
	{
		factType: FactMission,
		patterns: []pattern{
			newPattern(`(?i)\bmission(?:\s+statement)?\s*(?:is\s+|:\s*)(?:to\s+)?["“]?([^"”\n.]{10,200})`),
			newPattern(markdownField(`mission|mission statement`)),
		},
	},
	{
		factType: FactRevenue,
		patterns: []pattern{
			newPattern(`(?i)\brevenue\s+(?:of\s+|was\s+|is\s+|reached\s+|exceeded\s+|topped\s+|totaled\s+|totalled\s+)?(?:over\s+|about\s+|approximately\s+|more than\s+|nearly\s+)?(` + money + `)`),
			newPattern(`(?i)(` + money + `)\s+(?:in\s+)?(?:annual\s+)?(?:revenue|sales)`),
			newPattern(markdownField(`revenue|annual revenue`)),
		},
	},
	{
		factType: FactProduct,
		patterns: []pattern{
			newPattern(`(?i:products?\s+(?:include|includes|such as|like))\s+([A-Z][^.\n]{2,150})`),
			newPattern(`(?i:best known for|known for|famous for)\s+(?:(?i:its|their)\s+)?([^.\n]{3,150})`),
		},
	},
	{
		factType: FactAcquisition,
		patterns: []pattern{
			newPattern(`(?i:acquired|bought|purchased)\s+(` + orgName + `)`),
			newPattern(`(?i:acquired by)\s+(` + orgName + `)`),
			newPattern(`(?i:acquisition of)\s+(` + orgName + `)`),
		},
	},
	{
		factType: FactInterviewProcess,
		patterns: []pattern{
			newPattern(`(?i)\b((?:\d+|one|two|three|four|five|six|seven|eight)[\s-]+(?:rounds?|stages?|steps?)\s+(?:of\s+)?(?:technical\s+)?(?:interviews?|interviewing))`),
			newPattern(`(?i)\binterview process\s+(?:typically\s+|usually\s+|generally\s+)?(?:consists of|includes|involves|takes|lasts)\s+` + clause),
		},
	},
	{
		factType: FactCultureClaim,
		patterns: []pattern{
			newPattern(`(?i)\b(?:culture|work environment)\s+(?:is|that is|emphasizes|values|focuses on|centers on|prioritizes)\s+` + clause),
			newPattern(`(?i)\b(?:employees|engineers|people there)\s+(?:love|enjoy|value|appreciate|praise)\s+` + clause),
		},
	},
}

// cleanValue trims whitespace, quotes and trailing punctuation.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"“”'`)
	value = strings.TrimRight(value, ",;:")
	return strings.TrimSpace(value)
}
