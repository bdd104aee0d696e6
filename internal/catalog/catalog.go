package catalog

// Topic is one sustainability materiality subject from the fixed catalog.
type Topic string

// String returns the topic label.
func (t Topic) String() string {
	return string(t)
}

// SelectionSize is the number of topics an assessment covers.
const SelectionSize = 10

// topics is the ordered catalog. Order matters for display only.
var topics = []Topic{
	"永續策略",
	"誠信經營",
	"公司治理",
	"稅務政策",
	"風險控管",
	"法規遵循",
	"營運持續管理",
	"營運績效",
	"創新與數位責任",
	"資訊安全",
	"供應商管理",
	"客戶關係管理",
	"氣候變遷因應",
	"能資源管理",
	"職場健康與安全",
	"員工培育與職涯發展",
	"人才吸引與留任",
	"社會關懷與鄰里促進",
	"人權平等",
}

var topicIndex = func() map[Topic]int {
	m := make(map[Topic]int, len(topics))
	for i, t := range topics {
		m[t] = i
	}
	return m
}()

// Topics returns a copy of the catalog in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// Len returns the catalog size.
func Len() int {
	return len(topics)
}

// At returns the topic at catalog position i.
func At(i int) (Topic, bool) {
	if i < 0 || i >= len(topics) {
		return "", false
	}
	return topics[i], true
}

// Contains reports whether t is a catalog topic.
func Contains(t Topic) bool {
	_, ok := topicIndex[t]
	return ok
}

// IndexOf returns the catalog position of t, or -1.
func IndexOf(t Topic) int {
	if i, ok := topicIndex[t]; ok {
		return i
	}
	return -1
}
