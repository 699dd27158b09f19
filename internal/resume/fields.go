package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"recruitai/internal/logger"
	"recruitai/internal/storage"

	"go.uber.org/zap"
)

// Bounds of the sanitization contract.
const (
	maxSkills   = 20
	maxFieldLen = 1000

	// maxPromptText is how much extracted text is handed to the model.
	maxPromptText = 5000

	// rawReplyLimit bounds the offending reply attached to format errors.
	rawReplyLimit = 200
)

// Sentinels returned by the keyword strategy when nothing matches.
const (
	ExperienceNotFound = "N/A"
	EducationNotFound  = "Education information not found"
)

// FieldExtractionStrategy derives skills, experience and education from plain
// text. Strategies are interchangeable; callers run SanitizeFields on the
// output regardless of which strategy produced it.
type FieldExtractionStrategy interface {
	Name() string
	ExtractFields(ctx context.Context, text string) (storage.ParsedFields, error)
}

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\s*(\+)?\s*(?:years?|yrs?)\b`)

var sentenceSplit = regexp.MustCompile(`[.\n]`)

// KeywordStrategy matches text against the reference vocabularies. It is
// deterministic and makes no external calls.
type KeywordStrategy struct{}

func (KeywordStrategy) Name() string { return "keyword" }

func (KeywordStrategy) ExtractFields(_ context.Context, text string) (storage.ParsedFields, error) {
	lower := strings.ToLower(text)

	// Vocabulary order, vocabulary casing.
	var skills []string
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}

	experience := ExperienceNotFound
	if m := experiencePattern.FindStringSubmatch(text); m != nil {
		experience = m[1] + m[2]
	}

	education := EducationNotFound
	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if containsAny(strings.ToLower(sentence), educationKeywords) {
			education = sentence
			break
		}
	}

	return storage.ParsedFields{
		Skills:     skills,
		Experience: experience,
		Education:  education,
	}, nil
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// AIStrategy delegates field extraction to the external model with a strict
// output-schema instruction, then recovers and parses the JSON reply.
type AIStrategy struct {
	ai     Generator
	logger *zap.Logger
}

func NewAIStrategy(ai Generator, log *zap.Logger) *AIStrategy {
	if log == nil {
		log = zap.NewNop()
	}
	return &AIStrategy{ai: ai, logger: log}
}

func (s *AIStrategy) Name() string { return "ai" }

func (s *AIStrategy) ExtractFields(ctx context.Context, text string) (storage.ParsedFields, error) {
	text = cutAtRuneBoundary(text, maxPromptText)

	prompt := fmt.Sprintf(`Extract skills, experience, and education from the resume below.
Return ONLY a valid JSON object with this exact structure:
{
  "skills": ["Skill1", "Skill2", "Skill3"],
  "experience": "Experience summary with years and key roles",
  "education": "Education summary with degrees and institutions"
}

RESUME TEXT:
%s`, text)

	reply, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return storage.ParsedFields{}, &ExternalServiceError{Err: err}
	}

	fields, err := ParseModelReply(reply)
	if err != nil {
		s.logger.Error("ai returned invalid json",
			zap.String("reply", logger.Truncate(reply, rawReplyLimit)))
		return storage.ParsedFields{}, err
	}
	return fields, nil
}

// ParseModelReply recovers a JSON object from a free-text model reply.
// Code-fence markers are stripped and the reply is sliced from the first '{'
// to the last '}' so wrapping prose does not break parsing. Failures are not
// retried; the truncated raw reply is attached for diagnosis.
func ParseModelReply(reply string) (storage.ParsedFields, error) {
	clean := stripCodeFences(reply)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return storage.ParsedFields{}, &AIResponseFormatError{
			Raw: logger.Truncate(clean, rawReplyLimit),
			Err: fmt.Errorf("no json object in reply"),
		}
	}
	clean = clean[start : end+1]

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return storage.ParsedFields{}, &AIResponseFormatError{
			Raw: logger.Truncate(clean, rawReplyLimit),
			Err: err,
		}
	}

	return fieldsFromLoose(parsed), nil
}

func stripCodeFences(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// fieldsFromLoose coerces an untyped JSON object into ParsedFields: skill
// entries that are not strings are dropped, experience/education collapse to
// empty strings when they are not strings.
func fieldsFromLoose(m map[string]interface{}) storage.ParsedFields {
	var f storage.ParsedFields
	if arr, ok := m["skills"].([]interface{}); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				f.Skills = append(f.Skills, s)
			}
		}
	}
	if s, ok := m["experience"].(string); ok {
		f.Experience = s
	}
	if s, ok := m["education"].(string); ok {
		f.Education = s
	}
	return f
}

// SanitizeFields bounds untrusted extraction output before it is trusted as
// domain data: skills deduplicated, empties dropped, capped at maxSkills;
// experience and education truncated to maxFieldLen. Idempotent.
func SanitizeFields(f storage.ParsedFields) storage.ParsedFields {
	out := storage.ParsedFields{Skills: []string{}}

	seen := make(map[string]bool, len(f.Skills))
	for _, skill := range f.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out.Skills = append(out.Skills, skill)
		if len(out.Skills) == maxSkills {
			break
		}
	}

	out.Experience = truncateField(f.Experience)
	out.Education = truncateField(f.Education)
	return out
}

func truncateField(s string) string {
	return cutAtRuneBoundary(s, maxFieldLen)
}

// cutAtRuneBoundary bounds s to at most limit bytes without splitting a
// multi-byte rune at the cut.
func cutAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
