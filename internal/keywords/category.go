package keywords

import "regexp"

// Category is a display label assigned to a surfaced keyword.
type Category string

const (
	CategoryGaming        Category = "Gaming"
	CategoryMusic         Category = "Music"
	CategoryTech          Category = "Tech"
	CategoryEducation     Category = "Education"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryNews          Category = "News"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
)

// CategoryRule maps a keyword pattern to a category.
type CategoryRule struct {
	Pattern  *regexp.Regexp
	Category Category
}

// CategoryRules is evaluated in order; the first match wins.
var CategoryRules = []CategoryRule{
	{regexp.MustCompile(`(?i)game|gaming|게임|플레이|play`), CategoryGaming},
	{regexp.MustCompile(`(?i)music|음악|song|노래|뮤직|mv`), CategoryMusic},
	{regexp.MustCompile(`(?i)tech|기술|ai|코딩|개발|프로그래`), CategoryTech},
	{regexp.MustCompile(`(?i)study|공부|교육|학습|강의`), CategoryEducation},
	{regexp.MustCompile(`(?i)뷰티|beauty|패션|fashion|먹방|요리|cook`), CategoryLifestyle},
	{regexp.MustCompile(`(?i)news|뉴스|정치|경제`), CategoryNews},
	{regexp.MustCompile(`(?i)sports|스포츠|축구|야구|농구`), CategorySports},
}

// Classify assigns keyword a display category using CategoryRules, falling
// back to CategoryEntertainment.
func Classify(keyword string) Category {
	return ClassifyWith(CategoryRules, keyword)
}

// ClassifyWith is Classify over a custom rule table.
func ClassifyWith(rules []CategoryRule, keyword string) Category {
	for _, rule := range rules {
		if rule.Pattern.MatchString(keyword) {
			return rule.Category
		}
	}
	return CategoryEntertainment
}

var categoryNames = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"19": "Travel & Events",
	"20": "Gaming",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
}

// CategoryName returns the YouTube category name for id, or "" when unknown.
func CategoryName(id string) string {
	return categoryNames[id]
}
