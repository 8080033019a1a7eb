package dto

// WordStat word with its occurrence count
// WordStat 词与其出现次数
type WordStat struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// NoteStat note ranked by word count, identified by its cleaned title
// NoteStat 按词数排名的笔记，以清洗后的标题标识
type NoteStat struct {
	Title     string `json:"title"`
	WordCount int64  `json:"word_count"`
}

// Analytics corpus wide statistics
// Analytics 全量笔记统计
type Analytics struct {
	TotalNotes       int64       `json:"total_notes"`
	TotalWords       int64       `json:"total_words"`
	AvgWordsPerNote  float64     `json:"avg_words_per_note"`
	CommonWords      []*WordStat `json:"common_words"`
	TopLongestNotes  []*NoteStat `json:"top_3_longest_notes"`
	TopShortestNotes []*NoteStat `json:"top_3_shortest_notes"`
}
