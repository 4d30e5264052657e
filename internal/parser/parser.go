package parser

import (
	"strconv"
	"strings"
	"unicode"
)

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
	sectionNutrition
)

// Parse extracts a recipe from text laid out as requested by Prompt.
// Lines are read top to bottom; a label line sets a field or opens a
// section, any other line is read according to the open section.
func Parse(text string) Record {
	rec := NewRecord()
	sec := sectionNone
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		sec = parseLine(&rec, sec, line)
	}
	return rec
}

// parseLine applies one non-empty line and returns the section in effect for
// the next one.
func parseLine(rec *Record, sec section, line string) section {
	switch {
	case strings.HasPrefix(line, "NAME:"):
		rec.Name = value(line)
	case strings.HasPrefix(line, "CUISINE:"):
		rec.Cuisine = value(line)
	case strings.HasPrefix(line, "DIFFICULTY:"):
		rec.Difficulty = strings.ToLower(value(line))
	case strings.HasPrefix(line, "COOKING_TIME:"):
		rec.CookingTime = number(value(line), DefaultCookingTime)
	case strings.HasPrefix(line, "SERVING_SIZE:"):
		rec.ServingSize = number(value(line), DefaultServingSize)
	case strings.HasPrefix(line, "DIETARY_TAGS:"):
		rec.DietaryTags = splitTags(value(line))
	case strings.HasPrefix(line, "INGREDIENTS:"):
		return sectionIngredients
	case strings.HasPrefix(line, "INSTRUCTIONS:"):
		return sectionInstructions
	case strings.HasPrefix(line, "NUTRITION"):
		return sectionNutrition
	default:
		switch sec {
		case sectionIngredients:
			parseIngredient(rec, line)
		case sectionInstructions:
			parseInstruction(rec, line)
		case sectionNutrition:
			parseNutrition(rec, line)
		}
	}
	return sec
}

func parseIngredient(rec *Record, line string) {
	if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") {
		return
	}
	// bare markers carry no ingredient
	if item := strings.TrimSpace(strings.TrimLeft(line, "-•")); item != "" {
		rec.Ingredients = append(rec.Ingredients, item)
	}
}

func parseInstruction(rec *Record, line string) {
	first := []rune(line)[0]
	if !unicode.IsDigit(first) {
		return
	}
	if _, step, ok := strings.Cut(line, "."); ok {
		line = strings.TrimSpace(step)
	}
	rec.Instructions = append(rec.Instructions, line)
}

func parseNutrition(rec *Record, line string) {
	var field *int
	switch {
	case strings.Contains(line, "Calories:"):
		field = &rec.Nutrition.Calories
	case strings.Contains(line, "Protein:"):
		field = &rec.Nutrition.Protein
	case strings.Contains(line, "Carbs:"):
		field = &rec.Nutrition.Carbs
	case strings.Contains(line, "Fat:"):
		field = &rec.Nutrition.Fat
	case strings.Contains(line, "Fiber:"):
		field = &rec.Nutrition.Fiber
	default:
		return
	}
	*field = number(value(line), *field)
}

// value returns the trimmed text after the first colon
func value(line string) string {
	_, after, _ := strings.Cut(line, ":")
	return strings.TrimSpace(after)
}

// number parses the first run of ASCII digits in s, or returns fallback
func number(s string, fallback int) int {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return fallback
	}
	end := strings.IndexFunc(s[start:], func(r rune) bool { return !isDigit(r) })
	if end >= 0 {
		s = s[start : start+end]
	} else {
		s = s[start:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
