package gaps

import (
	"fmt"
	"regexp"
	"strings"
)

// Intent is the coarse task category inferred from the input. It steers
// which sections are synthesized and whether clarifying questions belong in
// the rewrite.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentCreativeStory
	IntentGameDesign
	IntentSoftwareBuild
)

func (i Intent) String() string {
	switch i {
	case IntentGeneral:
		return "general"
	case IntentCreativeStory:
		return "creative-story"
	case IntentGameDesign:
		return "game-design"
	case IntentSoftwareBuild:
		return "software-build"
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// AllowsQuestions reports whether a clarifying-questions section suits the
// intent. Creative, game, and software prompts are expected to make the
// call themselves rather than interrogate the user.
func (i Intent) AllowsQuestions() bool { return i == IntentGeneral }

var creativeCues = []string{
	"story", "short story", "poem", "haiku", "fiction", "tale", "narrative",
	"novel", "lyrics", "screenplay",
}

var gameCues = []string{
	"game", "board game", "card game", "level design", "gameplay", "rpg",
}

var gameQualifiers = []string{
	"design", "rules", "mechanics", "balance", "playtest",
}

var softwareCues = []string{
	"api", "class", "function", "endpoint", "database", "bug", "cli",
	"library", "compiler", "unit test", "stack trace",
	"python", "golang", "javascript", "typescript", "java", "rust", "sql",
}

var buildVerbs = []string{
	"build", "implement", "fix", "refactor", "debug", "deploy", "write",
	"create", "add",
}

var technicalObjects = []string{
	"app", "service", "script", "module", "server", "parser", "login",
	"code", "component", "pipeline", "schema", "feature",
}

func containsPhrase(lower, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(lower, p) {
			return true
		}
	}
	return false
}

// Classify infers the intent of a raw input using keyword heuristics.
// Creative cues win over game cues, which win over software cues; a game
// cue counts only alongside a design-intent qualifier.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	if containsAnyPhrase(lower, creativeCues) {
		return IntentCreativeStory
	}
	if containsAnyPhrase(lower, gameCues) && containsAnyPhrase(lower, gameQualifiers) {
		return IntentGameDesign
	}
	if containsAnyPhrase(lower, softwareCues) {
		return IntentSoftwareBuild
	}
	if containsAnyPhrase(lower, buildVerbs) && containsAnyPhrase(lower, technicalObjects) {
		return IntentSoftwareBuild
	}
	return IntentGeneral
}

// Subject extracts a topic phrase from "about X" or "where X" constructions,
// used by the semantic-expansion transform. Returns "" when neither occurs.
func Subject(text string) string {
	for _, marker := range []string{"about", "where"} {
		re := regexp.MustCompile(`(?i)\b` + marker + `\s+([^,.;:\n]+)`)
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
