package resume_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"recruitai/internal/resume"
	"recruitai/internal/storage"
)

// ── KeywordStrategy ────────────────────────────────────────────────────────

func TestKeywordStrategy_SkillsInVocabularyOrder(t *testing.T) {
	text := "I have 5 years of experience with React and MongoDB."
	fields, err := resume.KeywordStrategy{}.ExtractFields(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Output follows vocabulary order, not the order of appearance in text.
	if !containsInOrder(fields.Skills, "React", "MongoDB") {
		t.Errorf("skills = %v, want React before MongoDB (vocabulary order)", fields.Skills)
	}
	if fields.Experience != "5" {
		t.Errorf("experience = %q, want %q", fields.Experience, "5")
	}
	if fields.Education != resume.EducationNotFound {
		t.Errorf("education = %q, want sentinel", fields.Education)
	}
}

func TestKeywordStrategy_ExperiencePattern(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"3+ years of backend work", "3+"},
		{"over 10 years in ops", "10"},
		{"2 yrs with Python", "2"},
		{"1 yr internship", "1"},
		{"12 YEARS of leadership", "12"},
		{"no years mentioned", resume.ExperienceNotFound},
		{"", resume.ExperienceNotFound},
	}

	for _, tc := range cases {
		fields, err := resume.KeywordStrategy{}.ExtractFields(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("ExtractFields(%q) error: %v", tc.text, err)
		}
		if fields.Experience != tc.want {
			t.Errorf("ExtractFields(%q).Experience = %q, want %q", tc.text, fields.Experience, tc.want)
		}
	}
}

func TestKeywordStrategy_EducationFirstMatchingSentence(t *testing.T) {
	text := "Experienced engineer.\nBachelor of Science in Computer Science from MIT. Worked at Acme."
	fields, err := resume.KeywordStrategy{}.ExtractFields(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Bachelor of Science in Computer Science from MIT"
	if fields.Education != want {
		t.Errorf("education = %q, want %q", fields.Education, want)
	}
}

// ── SanitizeFields ─────────────────────────────────────────────────────────

func TestSanitizeFields_Bounds(t *testing.T) {
	skills := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		skills = append(skills, "Skill"+strings.Repeat("x", i))
	}
	skills = append(skills, "", "  ", "Skill") // empties and a near-duplicate

	fields := resume.SanitizeFields(storage.ParsedFields{
		Skills:     skills,
		Experience: strings.Repeat("e", 10000),
		Education:  strings.Repeat("u", 10000),
	})

	if len(fields.Skills) != 20 {
		t.Errorf("len(skills) = %d, want 20", len(fields.Skills))
	}
	for _, s := range fields.Skills {
		if s == "" {
			t.Error("sanitized skills contain an empty string")
		}
	}
	if len(fields.Experience) != 1000 {
		t.Errorf("len(experience) = %d, want 1000", len(fields.Experience))
	}
	if len(fields.Education) != 1000 {
		t.Errorf("len(education) = %d, want 1000", len(fields.Education))
	}
}

func TestSanitizeFields_TruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes never divide the 1000-byte limit evenly, so a byte slice
	// would cut mid-rune.
	long := strings.Repeat("日", 500)

	fields := resume.SanitizeFields(storage.ParsedFields{
		Experience: long,
		Education:  long,
	})

	if !utf8.ValidString(fields.Experience) {
		t.Error("truncated experience is not valid UTF-8")
	}
	if !utf8.ValidString(fields.Education) {
		t.Error("truncated education is not valid UTF-8")
	}
	if len(fields.Experience) > 1000 {
		t.Errorf("len(experience) = %d, want <= 1000", len(fields.Experience))
	}
	if len(fields.Experience) != 999 {
		t.Errorf("len(experience) = %d, want 999 (333 complete runes)", len(fields.Experience))
	}
}

func TestSanitizeFields_DropsDuplicates(t *testing.T) {
	fields := resume.SanitizeFields(storage.ParsedFields{
		Skills: []string{"Go", "React", "Go", " React ", "SQL"},
	})
	want := []string{"Go", "React", "SQL"}
	if !reflect.DeepEqual(fields.Skills, want) {
		t.Errorf("skills = %v, want %v", fields.Skills, want)
	}
}

func TestSanitizeFields_Idempotent(t *testing.T) {
	once := resume.SanitizeFields(storage.ParsedFields{
		Skills:     []string{"Go", "", "Go", "React"},
		Experience: strings.Repeat("a", 1500),
		Education:  "MSc",
	})
	twice := resume.SanitizeFields(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("sanitization not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

// ── ParseModelReply ────────────────────────────────────────────────────────

func TestParseModelReply_FencedJSON(t *testing.T) {
	reply := "```json\n{\"skills\": [\"Go\", \"React\"], \"experience\": \"5 years\", \"education\": \"BSc\"}\n```"
	fields, err := resume.ParseModelReply(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fields.Skills, []string{"Go", "React"}) {
		t.Errorf("skills = %v", fields.Skills)
	}
	if fields.Experience != "5 years" || fields.Education != "BSc" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestParseModelReply_RecoversFromWrappingProse(t *testing.T) {
	reply := `Sure! Here is the extracted data:
{"skills": ["Go"], "experience": "3", "education": "PhD"}
Let me know if you need anything else.`

	fields, err := resume.ParseModelReply(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fields.Skills, []string{"Go"}) {
		t.Errorf("skills = %v", fields.Skills)
	}
}

func TestParseModelReply_UnbalancedBracesFail(t *testing.T) {
	_, err := resume.ParseModelReply(`{"skills": ["Go"], "experience": "3"`)
	var formatErr *resume.AIResponseFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %v, want AIResponseFormatError", err)
	}
	if formatErr.Raw == "" {
		t.Error("expected truncated raw reply attached to the error")
	}
}

func TestParseModelReply_NoJSONObjectFails(t *testing.T) {
	_, err := resume.ParseModelReply("I could not read the resume, sorry.")
	var formatErr *resume.AIResponseFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %v, want AIResponseFormatError", err)
	}
}

func TestParseModelReply_CoercesWrongTypes(t *testing.T) {
	reply := `{"skills": ["Go", 42, null, "React"], "experience": 7, "education": ["BSc"]}`
	fields, err := resume.ParseModelReply(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fields.Skills, []string{"Go", "React"}) {
		t.Errorf("skills = %v, want non-string entries dropped", fields.Skills)
	}
	if fields.Experience != "" || fields.Education != "" {
		t.Errorf("non-string fields should coerce to empty, got %+v", fields)
	}
}

// ── AIStrategy ─────────────────────────────────────────────────────────────

func TestAIStrategy_PromptUsesAtMost5000Chars(t *testing.T) {
	gen := &fakeGenerator{reply: `{"skills": [], "experience": "", "education": ""}`}
	s := resume.NewAIStrategy(gen, nil)

	text := strings.Repeat("r", 9000)
	if _, err := s.ExtractFields(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.promptCalls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.promptCalls)
	}
	if strings.Contains(gen.lastPrompt, strings.Repeat("r", 5001)) {
		t.Error("prompt contains more than 5000 characters of resume text")
	}
	if !strings.Contains(gen.lastPrompt, strings.Repeat("r", 5000)) {
		t.Error("prompt is missing the first 5000 characters of resume text")
	}
}

func TestAIStrategy_PromptCapKeepsRunesIntact(t *testing.T) {
	gen := &fakeGenerator{reply: `{"skills": [], "experience": "", "education": ""}`}
	s := resume.NewAIStrategy(gen, nil)

	// 3-byte runes straddle the 5000-byte cut.
	text := strings.Repeat("日", 2000)
	if _, err := s.ExtractFields(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utf8.ValidString(gen.lastPrompt) {
		t.Error("prompt sent to the generator is not valid UTF-8")
	}
}

func TestAIStrategy_GeneratorFailureIsExternalServiceError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exhausted")}
	s := resume.NewAIStrategy(gen, nil)

	_, err := s.ExtractFields(context.Background(), "some resume text")
	var external *resume.ExternalServiceError
	if !errors.As(err, &external) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
}

func containsInOrder(haystack []string, first, second string) bool {
	fi, si := -1, -1
	for i, s := range haystack {
		if s == first && fi == -1 {
			fi = i
		}
		if s == second {
			si = i
		}
	}
	return fi != -1 && si != -1 && fi < si
}
