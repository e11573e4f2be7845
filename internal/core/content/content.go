// Package content holds the curated trend cards shown on the landing page
package content

// Card is one trend preview
type Card struct {
	Category      string `json:"category" example:"커머스"`
	Title         string `json:"title" example:"라이브쇼핑 리텐션 2배 만든 포맷"`
	Summary       string `json:"summary"`
	SourceName    string `json:"source_name" example:"리테일랩"`
	SourceLogoURL string `json:"source_logo_url" example:"https://picsum.photos/40/40?grayscale&random=2"`
	// PublishedDate is a calendar date, YYYY-MM-DD
	PublishedDate string `json:"published_date" example:"2025-08-23"`
}

var trends = []Card{
	{
		Category:      "AI · 생성",
		Title:         "오픈소스 모델의 상업 채택 가속",
		Summary:       "대규모 언어 모델의 오픈소스화가 기업들의 AI 도입 장벽을 낮추고 있습니다.",
		SourceName:    "뉴럴뉴스",
		SourceLogoURL: "https://picsum.photos/40/40?grayscale&random=1",
		PublishedDate: "2025-08-24",
	},
	{
		Category:      "커머스",
		Title:         "라이브쇼핑 리텐션 2배 만든 포맷",
		Summary:       "단순 판매를 넘어 엔터테인먼트 요소를 결합한 새로운 포맷이 고객 유지율을 극대화합니다.",
		SourceName:    "리테일랩",
		SourceLogoURL: "https://picsum.photos/40/40?grayscale&random=2",
		PublishedDate: "2025-08-23",
	},
	{
		Category:      "소셜",
		Title:         "짧은 형태 뉴스레터의 재부상",
		Summary:       "정보 과잉 시대에 대응해, 한 가지 주제를 깊이 있게 다루는 짧은 뉴스레터가 인기를 끌고 있습니다.",
		SourceName:    "미디어인사이트",
		SourceLogoURL: "https://picsum.photos/40/40?grayscale&random=3",
		PublishedDate: "2025-08-22",
	},
	{
		Category:      "블록체인",
		Title:         "실물자산 토큰화(RWA) 시장 개화",
		Summary:       "부동산, 미술품 등 전통 자산을 블록체인에 올려 유동성을 확보하는 시장이 본격적으로 열리고 있습니다.",
		SourceName:    "크립토리포트",
		SourceLogoURL: "https://picsum.photos/40/40?grayscale&random=4",
		PublishedDate: "2025-08-21",
	},
}

// Trends returns the cards newest first, callers own the slice
func Trends() []Card {
	out := make([]Card, len(trends))
	copy(out, trends)
	return out
}
