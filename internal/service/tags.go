package service

import "strings"

// keywordRule maps keywords found in a title/description to a tag.
type keywordRule struct {
	tag      string
	keywords []string
}

var keywordRules = []keywordRule{
	{"Adventure", []string{"adventure", "journey"}},
	{"Sci-Fi", []string{"space", "cosmic", "universe"}},
	{"Romance", []string{"love", "romantic"}},
	{"Comedy", []string{"funny", "comedy", "laugh"}},
	{"Horror", []string{"scary", "horror", "thriller"}},
	{"Gaming", []string{"game", "gaming", "play"}},
	{"Music", []string{"music", "song", "concert"}},
}

var fallbackTags = []string{"Entertainment", "Trending", "Featured"}

const minTagCount = 3

// ContentTags classifies a title and description against the keyword table
// and pads the result up to three tags with the generic fallbacks, in order,
// skipping any already present.
func ContentTags(title, description string) []string {
	combined := strings.ToLower(title + " " + description)

	tags := make([]string, 0, minTagCount)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}

	for _, fb := range fallbackTags {
		if len(tags) >= minTagCount {
			break
		}
		present := false
		for _, t := range tags {
			if t == fb {
				present = true
				break
			}
		}
		if !present {
			tags = append(tags, fb)
		}
	}

	return tags
}
