// Package insight turns viewer comments into an audience analysis, content
// recommendations and script outlines using a text generation provider.
package insight

import (
	"fmt"
	"strings"
)

// Sentiment is the share of positive, neutral and negative comments, in
// percent, with a short summary of the audience reaction.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
	Summary  string  `json:"summary"`
}

type KeywordScore struct {
	Keyword    string  `json:"keyword"`
	Count      int     `json:"count"`
	Importance float64 `json:"importance"`
}

// Analysis is the structured result of a comment analysis.
type Analysis struct {
	Sentiment     Sentiment      `json:"sentiment"`
	Keywords      []KeywordScore `json:"keywords"`
	Interests     []string       `json:"interests"`
	TotalComments int            `json:"totalComments"`
}

// Recommendation is one suggested content topic.
type Recommendation struct {
	Keyword        string  `json:"keyword"`
	Reason         string  `json:"reason"`
	PotentialScore float64 `json:"potentialScore"`
}

type Section struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// ScriptOutline is a generated video script structure.
type ScriptOutline struct {
	Title        string    `json:"title"`
	Hook         string    `json:"hook"`
	Sections     []Section `json:"sections"`
	Conclusion   string    `json:"conclusion"`
	CallToAction string    `json:"callToAction"`
}

// Markdown renders the outline as a Markdown document.
func (o ScriptOutline) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", oneLine(o.Title))
	if o.Hook != "" {
		fmt.Fprintf(&b, "> %s\n\n", oneLine(o.Hook))
	}
	for i, s := range o.Sections {
		fmt.Fprintf(&b, "## %d. %s", i+1, oneLine(s.Title))
		if s.Duration != "" {
			fmt.Fprintf(&b, " (%s)", oneLine(s.Duration))
		}
		b.WriteString("\n\n")
		if s.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(s.Description))
		}
	}
	if o.Conclusion != "" {
		fmt.Fprintf(&b, "## Conclusion\n\n%s\n\n", strings.TrimSpace(o.Conclusion))
	}
	if o.CallToAction != "" {
		fmt.Fprintf(&b, "**%s**\n", oneLine(o.CallToAction))
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
