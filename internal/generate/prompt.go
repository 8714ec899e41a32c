package generate

import (
	"fmt"
	"strings"
)

// BuildPrompt wraps a title in the article-writing instructions sent to the
// generation API.
func BuildPrompt(title string) string {
	prompt := fmt.Sprintf(`
You are a technical writer specializing in programming tutorials and deep dives.
Write a detailed, well-structured, SEO-optimized blog article on the following topic:
%q

The article must:
- Be at least 800 words
- Contain clear sections with Markdown headers (##, ###)
- Include examples, code snippets, and practical explanations
- Avoid fluff, keep a professional tone
- End with a short summary and takeaway points
`, title)
	return strings.TrimSpace(prompt)
}
