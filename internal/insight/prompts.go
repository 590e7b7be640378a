package insight

import (
	"fmt"
	"strings"
)

const (
	analystRole    = "You are an expert analyst of YouTube comment sections."
	strategistRole = "You are a YouTube content strategist."
	writerRole     = "You are a professional writer of scripts for popular YouTube videos."
	jsonOnly       = "Respond with JSON only. Do not output any other text."
)

func systemPrompt(role string) string {
	return role + " " + jsonOnly
}

func analyzePrompt(title, comments, lang string) string {
	return fmt.Sprintf(`Analyze the comments of the following video.

Video title: %s

Comments:
%s

Return the analysis in this JSON format:
{
  "sentiment": {
    "positive": <share of positive comments (0-100)>,
    "neutral": <share of neutral comments (0-100)>,
    "negative": <share of negative comments (0-100)>,
    "summary": "<summary of the audience reaction in 2-3 sentences>"
  },
  "keywords": [
    {"keyword": "<frequently mentioned keyword>", "count": <mentions>, "importance": <importance 0-100>}
  ],
  "interests": ["<topic viewers are interested in>"]
}

Rules:
- Extract at most 15 keywords that appear often or carry weight in the comments.
- List at most 5 interests: topics viewers want to know more about.
- The sentiment shares must add up to 100.
- Write all text in %s.
- Respond with valid JSON only.`, title, comments, lang)
}

func recommendPrompt(title string, a *Analysis, lang string) string {
	kws := make([]string, 0, min(len(a.Keywords), recommendKeywordLimit))
	for _, k := range a.Keywords[:min(len(a.Keywords), recommendKeywordLimit)] {
		kws = append(kws, k.Keyword)
	}
	return fmt.Sprintf(`Suggest new content topics based on the comment analysis of this video.

Original video title: %s

Comment analysis:
- Audience reaction: %s
- Main keywords: %s
- Viewer interests: %s

Suggest exactly %d content keywords in this JSON format:
{
  "recommendations": [
    {
      "keyword": "<recommended topic or keyword>",
      "reason": "<why this topic, based on the comments>",
      "potentialScore": <viral potential 0-100>
    }
  ]
}

Rules:
- Build on what viewers are curious about or want to learn more about.
- Stay related to the original video while taking a new angle.
- Score the potential realistically.
- Write all text in %s.
- Respond with valid JSON only.`,
		title, a.Sentiment.Summary, strings.Join(kws, ", "), strings.Join(a.Interests, ", "), RecommendationCount, lang)
}

func scriptPrompt(rec Recommendation, originalTitle, lang string) string {
	return fmt.Sprintf(`Write a YouTube video script outline on the following topic.

Topic: %s
Why it was recommended: %s
Reference video: %s

Return the outline in this JSON format:
{
  "title": "<compelling video title>",
  "hook": "<opening line for the first 3 seconds>",
  "sections": [
    {
      "title": "<section title>",
      "description": "<what the section covers>",
      "duration": "<estimated length, e.g. 1m 30s>"
    }
  ],
  "conclusion": "<closing summary and message to viewers>",
  "callToAction": "<subscribe, like or comment prompt>"
}

Rules:
- Use 3 to 5 sections, each with a clear purpose.
- Structure the video so viewers watch to the end.
- Open the hook with a question or a surprising fact.
- Write all text in %s.
- Respond with valid JSON only.`, rec.Keyword, rec.Reason, originalTitle, lang)
}
