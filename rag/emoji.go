package rag

import "regexp"

// maxEmojis caps the extracted set; anything past that adds no steering value.
const maxEmojis = 20

// emojiPattern matches one pictographic symbol with an optional variation
// selector or skin-tone modifier attached.
var emojiPattern = compileEmojiPattern()

func compileEmojiPattern() *regexp.Regexp {
	// Go's regexp has no Extended_Pictographic class; the symbol categories
	// cover the same ground for chat emoji.
	if re, err := regexp.Compile(`[\p{So}\p{Sk}][\x{FE0F}\x{1F3FB}-\x{1F3FF}]?`); err == nil {
		return re
	}
	// Fixed code-point ranges approximating the pictograph blocks.
	return regexp.MustCompile(`[\x{2600}-\x{27BF}\x{1F300}-\x{1FAFF}][\x{FE0F}\x{1F3FB}-\x{1F3FF}]?`)
}

// ExtractEmojis returns the pictographic symbols found in text, deduplicated
// in first-seen order and capped at 20 entries.
func ExtractEmojis(text string) []string {
	if text == "" {
		return nil
	}
	matches := emojiPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	emojis := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, dup := seen[match]; dup {
			continue
		}
		seen[match] = struct{}{}
		emojis = append(emojis, match)
		if len(emojis) == maxEmojis {
			break
		}
	}
	return emojis
}
