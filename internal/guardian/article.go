package guardian

// Article is one parsed search result. Missing source data is always the
// empty string so views never special-case it.
type Article struct {
	Title   string `json:"title"`
	Section string `json:"section"`
	Date    string `json:"date"` // already formatted for display, see DisplayDateLayout
	Author  string `json:"author"`
	URL     string `json:"url"`
}

// Result is the outcome of a pipeline run: either no data at all, or an
// ordered (possibly empty) list of articles.
type Result struct {
	articles []Article
	present  bool
}

// NoData is returned when nothing could be fetched.
func NoData() Result {
	return Result{}
}

// Found wraps parsed articles. A nil slice is normalized to an empty one so
// Present stays true.
func Found(articles []Article) Result {
	if articles == nil {
		articles = []Article{}
	}
	return Result{articles: articles, present: true}
}

func (r Result) Present() bool {
	return r.present
}

// Empty reports whether there is nothing to display, regardless of cause.
func (r Result) Empty() bool {
	return len(r.articles) == 0
}

// Articles returns a copy of the parsed articles in server order.
func (r Result) Articles() []Article {
	if !r.present {
		return nil
	}
	out := make([]Article, len(r.articles))
	copy(out, r.articles)
	return out
}

func (r Result) Len() int {
	return len(r.articles)
}
