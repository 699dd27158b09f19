package ranking

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"recruitai/internal/storage"
)

// Skill fit is a stronger predictor than tenure, hence the 0.7/0.3 split.
const (
	skillWeight      = 0.7
	experienceWeight = 0.3
)

// Request carries the job requirements candidates are ranked against.
// ExperienceLevel may arrive as a JSON number or string.
type Request struct {
	JobID           string      `json:"jobId"`
	RequiredSkills  []string    `json:"requiredSkills"`
	ExperienceLevel interface{} `json:"experienceLevel"`
}

// Score is the per-candidate scoring breakdown, each component 0-100.
type Score struct {
	SkillMatchScore int `json:"skillMatchScore"`
	ExperienceScore int `json:"experienceScore"`
	MatchScore      int `json:"matchScore"`
}

// RankedCandidate is a candidate annotated with its scoring breakdown.
type RankedCandidate struct {
	*storage.Candidate
	SkillMatchScore int `json:"skillMatchScore"`
	ExperienceScore int `json:"experienceScore"`
	MatchScore      int `json:"matchScore"`
}

// SkillMatchPolicy decides whether a candidate skill satisfies a required
// skill. Exactly one policy is active, selected by configuration.
type SkillMatchPolicy interface {
	Name() string
	Matches(candidateSkill, requiredSkill string) bool
}

// ExactPolicy matches on case-insensitive equality. This is the default.
type ExactPolicy struct{}

func (ExactPolicy) Name() string { return "exact" }

func (ExactPolicy) Matches(candidateSkill, requiredSkill string) bool {
	return strings.EqualFold(strings.TrimSpace(candidateSkill), strings.TrimSpace(requiredSkill))
}

// SubstringPolicy matches when the required skill appears, case-insensitively,
// inside the candidate skill. Looser; accepts e.g. "React Native" for "React".
type SubstringPolicy struct{}

func (SubstringPolicy) Name() string { return "substring" }

func (SubstringPolicy) Matches(candidateSkill, requiredSkill string) bool {
	return strings.Contains(strings.ToLower(candidateSkill), strings.ToLower(requiredSkill))
}

// PolicyFromName resolves a configured policy name, defaulting to exact.
func PolicyFromName(name string) SkillMatchPolicy {
	if strings.EqualFold(name, "substring") {
		return SubstringPolicy{}
	}
	return ExactPolicy{}
}

// Engine computes match scores. It is a pure function of its inputs; score
// persistence happens separately in ApplyScores.
type Engine struct {
	policy SkillMatchPolicy
}

func NewEngine(policy SkillMatchPolicy) *Engine {
	if policy == nil {
		policy = ExactPolicy{}
	}
	return &Engine{policy: policy}
}

// Score computes the weighted match score of one candidate against the request.
func (e *Engine) Score(c *storage.Candidate, req Request) Score {
	var s Score

	if len(req.RequiredSkills) > 0 {
		matched := 0
		for _, required := range req.RequiredSkills {
			for _, have := range c.Skills {
				if e.policy.Matches(have, required) {
					matched++
					break
				}
			}
		}
		s.SkillMatchScore = round(float64(matched) / float64(len(req.RequiredSkills)) * 100)
	}

	requiredYears := yearsFrom(req.ExperienceLevel)
	candidateYears := leadingInt(c.Experience)
	switch {
	case requiredYears <= 0:
		s.ExperienceScore = 0
	case candidateYears >= requiredYears:
		s.ExperienceScore = 100
	default:
		s.ExperienceScore = round(float64(candidateYears) / float64(requiredYears) * 100)
	}

	s.MatchScore = round(skillWeight*float64(s.SkillMatchScore) + experienceWeight*float64(s.ExperienceScore))
	return s
}

// Rank scores every candidate and orders them by match score descending.
// Ties keep their prior relative order (stable sort).
func (e *Engine) Rank(candidates []*storage.Candidate, req Request) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		s := e.Score(c, req)
		ranked = append(ranked, RankedCandidate{
			Candidate:       c,
			SkillMatchScore: s.SkillMatchScore,
			ExperienceScore: s.ExperienceScore,
			MatchScore:      s.MatchScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	return ranked
}

var leadingIntPattern = regexp.MustCompile(`^\s*(\d+)`)

// leadingInt parses the leading integer out of a free-text experience summary
// ("5+ years in backend" -> 5). Non-numeric input counts as zero.
func leadingInt(s string) int {
	m := leadingIntPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// yearsFrom coerces the caller-supplied experience level, which may be a JSON
// number, a numeric string or absent.
func yearsFrom(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return int(t)
	case int:
		return t
	case string:
		return leadingInt(t)
	default:
		return 0
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
